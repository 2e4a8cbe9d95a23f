package storage

import (
	"context"
	"errors"
	"time"
)

// ErrFolderNotEmpty is returned by DeleteFolder when the backend still sees
// objects under the folder path. The backend may lag behind recent object
// deletes, so callers retry after wiping the prefix explicitly.
var ErrFolderNotEmpty = errors.New("storage: folder not empty")

// ErrObjectNotFound is returned when an object key does not exist.
var ErrObjectNotFound = errors.New("storage: object not found")

// UploadResult describes a stored object. ResolvedName differs from the
// requested name when a collision forced a suffix; Renamed reports that.
type UploadResult struct {
	ObjectID     string
	PublicRef    string
	URL          string
	Size         int64
	CreatedAt    time.Time
	ResolvedName string
	ResolvedPath string
	Renamed      bool
}

// RenameResult describes an object after a rename.
type RenameResult struct {
	ObjectID string
	URL      string
}

// StorageError carries the provider and operation code of a failed backend
// call.
type StorageError struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Key      string `json:"key,omitempty"`
}

func (e *StorageError) Error() string {
	return e.Message
}

// NewStorageError creates a new storage error.
func NewStorageError(provider, code, message, key string) *StorageError {
	return &StorageError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Key:      key,
	}
}

// RemoteStorage is the object-storage capability the synchronizer consumes.
// The backend keeps its own folder tree keyed by canonical paths; object
// ids are the backend keys under that tree.
type RemoteStorage interface {
	Upload(ctx context.Context, data []byte, contentType, name, folderPath string) (*UploadResult, error)

	CreateFolder(ctx context.Context, path string) error
	RenameFolder(ctx context.Context, oldPath, newPath string) error
	// DeleteFolder removes an empty folder, failing with ErrFolderNotEmpty
	// when objects remain under it.
	DeleteFolder(ctx context.Context, path string) error

	DeleteObjects(ctx context.Context, objectIDs []string) error
	// DeleteByPrefix wipes every object of every kind under the path
	// prefix. Used to clear eventual-consistency stragglers before
	// retrying DeleteFolder.
	DeleteByPrefix(ctx context.Context, prefix string) error
	RenameObject(ctx context.Context, objectID, newName string) (*RenameResult, error)

	ResolveDownloadURL(ctx context.Context, objectID, versionID string, attachment bool) (string, error)

	HealthCheck() error
}
