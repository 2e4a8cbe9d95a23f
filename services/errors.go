package services

import "errors"

// Error taxonomy surfaced to the controllers. NotFound, Unauthorized and
// Conflict are reported to the caller as structured rejections and never
// retried; RemoteUnavailable aborts the remaining steps of a multi-step
// operation before any metadata is written; StoreFailed hides the backend
// driver error behind a single condition.
var (
	ErrNotFound          = errors.New("asset not found")
	ErrUnauthorized      = errors.New("caller does not own the asset")
	ErrConflict          = errors.New("an asset with this name already exists at this location")
	ErrRemoteUnavailable = errors.New("remote storage operation failed")
	ErrStoreFailed       = errors.New("store operation failed")

	ErrInvalidShare = errors.New("share link is invalid or expired")
	ErrInvalidName  = errors.New("asset name is not a valid path segment")
)
