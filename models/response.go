package models

import "time"

// APIResponse is the common response envelope for all endpoints.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// AssetListing is the standard listing payload: folders first, then files,
// each sorted per the requested view.
type AssetListing struct {
	Folders []Folder `json:"folders"`
	Files   []File   `json:"files"`
}

// RecentEntry is one element of the recent view: files and folders
// flattened into a single newest-first sequence. Exactly one of File and
// Folder is set, per Kind.
type RecentEntry struct {
	Kind   string  `json:"kind"`
	Folder *Folder `json:"folder,omitempty"`
	File   *File   `json:"file,omitempty"`
}

// Request bodies.

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" validate:"required,min=8,strong_password"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type FolderCreateRequest struct {
	Name     string `json:"name" validate:"required,folder_name"`
	Location string `json:"location" validate:"required"`
	Starred  bool   `json:"starred"`
}

type RenameRequest struct {
	NewName string `json:"new_name" validate:"required,folder_name"`
}

type ShareCreateRequest struct {
	AssetID   string `json:"asset_id" validate:"required"`
	AssetType string `json:"asset_type" validate:"required,oneof=file folder"`
	Duration  string `json:"duration" validate:"required,oneof=1hr 1day 1week 30days never"`
}
