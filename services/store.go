package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cloudnest/models"
)

// ListSort selects the ordering of listing reads. Callers choose the sort
// explicitly: name ordering for browsing views, date ordering for recency
// views.
type ListSort int

const (
	SortByNameDesc ListSort = iota
	SortByDateDesc
)

// Subtree is the result of a prefix scan: every file and folder whose
// location falls under a canonical path.
type Subtree struct {
	Files   []models.File
	Folders []models.Folder
}

// AssetStore is the metadata store adapter over the users, files, folders
// and shared collections. Implementations surface backend failures as
// ErrStoreFailed, missing rows as ErrNotFound and uniqueness violations as
// ErrConflict.
type AssetStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)

	CreateFile(ctx context.Context, file *models.File) error
	CreateFolder(ctx context.Context, folder *models.Folder) error
	FileByID(ctx context.Context, id primitive.ObjectID) (*models.File, error)
	FolderByID(ctx context.Context, id primitive.ObjectID) (*models.Folder, error)
	FolderByPath(ctx context.Context, userID primitive.ObjectID, path string) (*models.Folder, error)

	FilesByLocation(ctx context.Context, userID primitive.ObjectID, location string, sort ListSort) ([]models.File, error)
	FoldersByLocation(ctx context.Context, userID primitive.ObjectID, location string, sort ListSort) ([]models.Folder, error)
	UserFiles(ctx context.Context, userID primitive.ObjectID, sort ListSort) ([]models.File, error)
	UserFolders(ctx context.Context, userID primitive.ObjectID, sort ListSort) ([]models.Folder, error)
	// SubtreeByPath returns every asset at or under the canonical path,
	// the folder addressed by the path itself excluded. Matching is
	// anchored on path segments.
	SubtreeByPath(ctx context.Context, userID primitive.ObjectID, path string) (*Subtree, error)

	SetFileStarred(ctx context.Context, id primitive.ObjectID, starred bool) error
	SetFolderStarred(ctx context.Context, id primitive.ObjectID, starred bool) error
	SetFolderPinned(ctx context.Context, id primitive.ObjectID, pinned bool) error

	// IncrementFolderSize adjusts the cached subtree size, clamping at
	// zero; an attempted underflow is logged as an inconsistency.
	IncrementFolderSize(ctx context.Context, id primitive.ObjectID, delta int64) error

	RenameFile(ctx context.Context, id primitive.ObjectID, newName, newType, newAssetID, newURL string) error
	RenameFolder(ctx context.Context, id primitive.ObjectID, newName, newPath string) error
	// RewriteDescendantPaths swaps the oldPrefix of every descendant
	// row's location (and the path-derived asset_id of files) for
	// newPrefix, as one atomic unit.
	RewriteDescendantPaths(ctx context.Context, userID primitive.ObjectID, oldPrefix, newPrefix string) (int64, error)

	DeleteFiles(ctx context.Context, ids []primitive.ObjectID) error
	DeleteFolders(ctx context.Context, ids []primitive.ObjectID) error

	CreateShare(ctx context.Context, share *models.Share) error
	ShareByID(ctx context.Context, id string) (*models.Share, error)
	DeleteShare(ctx context.Context, id string) error
}
