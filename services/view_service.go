package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cloudnest/models"
	"cloudnest/utils"
)

// ViewService builds the derived listings. Views are pure projections of
// the metadata store and never touch remote storage.
type ViewService struct {
	store AssetStore
}

func NewViewService(store AssetStore) *ViewService {
	return &ViewService{store: store}
}

// ListFolder returns the direct children of a folder path, folders first.
// Only exact-location rows are included, never deeper descendants.
func (vs *ViewService) ListFolder(ctx context.Context, userID primitive.ObjectID, folderPath string, sort ListSort) (*models.AssetListing, error) {
	if !utils.IsSubtree(userID.Hex(), folderPath) {
		return nil, ErrUnauthorized
	}
	if _, err := vs.store.FolderByPath(ctx, userID, folderPath); err != nil {
		return nil, err
	}

	folders, err := vs.store.FoldersByLocation(ctx, userID, folderPath, sort)
	if err != nil {
		return nil, err
	}
	files, err := vs.store.FilesByLocation(ctx, userID, folderPath, sort)
	if err != nil {
		return nil, err
	}
	return &models.AssetListing{Folders: folders, Files: files}, nil
}

// Recent returns every asset of the user, files and folders merged into
// one sequence ordered newest first.
func (vs *ViewService) Recent(ctx context.Context, userID primitive.ObjectID) ([]models.RecentEntry, error) {
	folders, err := vs.store.UserFolders(ctx, userID, SortByDateDesc)
	if err != nil {
		return nil, err
	}
	files, err := vs.store.UserFiles(ctx, userID, SortByDateDesc)
	if err != nil {
		return nil, err
	}

	// Both inputs are already newest first, so a two-pointer merge keeps
	// the combined sequence ordered.
	entries := make([]models.RecentEntry, 0, len(folders)+len(files))
	fi, fo := 0, 0
	for fi < len(files) || fo < len(folders) {
		if fo == len(folders) || (fi < len(files) && !files[fi].CreatedAt.Before(folders[fo].CreatedAt)) {
			entries = append(entries, models.RecentEntry{Kind: "file", File: &files[fi]})
			fi++
			continue
		}
		entries = append(entries, models.RecentEntry{Kind: "folder", Folder: &folders[fo]})
		fo++
	}
	return entries, nil
}

// Starred returns the user's starred assets of both kinds.
func (vs *ViewService) Starred(ctx context.Context, userID primitive.ObjectID) (*models.AssetListing, error) {
	folders, err := vs.store.UserFolders(ctx, userID, SortByNameDesc)
	if err != nil {
		return nil, err
	}
	files, err := vs.store.UserFiles(ctx, userID, SortByNameDesc)
	if err != nil {
		return nil, err
	}

	listing := &models.AssetListing{Folders: []models.Folder{}, Files: []models.File{}}
	for _, folder := range folders {
		if folder.Starred {
			listing.Folders = append(listing.Folders, folder)
		}
	}
	for _, file := range files {
		if file.Starred {
			listing.Files = append(listing.Files, file)
		}
	}
	return listing, nil
}

// Pinned returns the user's pinned folders.
func (vs *ViewService) Pinned(ctx context.Context, userID primitive.ObjectID) ([]models.Folder, error) {
	folders, err := vs.store.UserFolders(ctx, userID, SortByNameDesc)
	if err != nil {
		return nil, err
	}
	pinned := []models.Folder{}
	for _, folder := range folders {
		if folder.Pinned {
			pinned = append(pinned, folder)
		}
	}
	return pinned, nil
}

// Photos returns the user's files whose extension is in the image table.
func (vs *ViewService) Photos(ctx context.Context, userID primitive.ObjectID) ([]models.File, error) {
	return vs.filesByExt(ctx, userID, utils.IsImageExt)
}

// Videos returns the user's files whose extension is in the video table.
func (vs *ViewService) Videos(ctx context.Context, userID primitive.ObjectID) ([]models.File, error) {
	return vs.filesByExt(ctx, userID, utils.IsVideoExt)
}

// Documents returns the user's files whose extension is in the document
// table.
func (vs *ViewService) Documents(ctx context.Context, userID primitive.ObjectID) ([]models.File, error) {
	return vs.filesByExt(ctx, userID, utils.IsDocumentExt)
}

func (vs *ViewService) filesByExt(ctx context.Context, userID primitive.ObjectID, match func(string) bool) ([]models.File, error) {
	files, err := vs.store.UserFiles(ctx, userID, SortByDateDesc)
	if err != nil {
		return nil, err
	}
	matched := []models.File{}
	for _, file := range files {
		if match(file.Type) {
			matched = append(matched, file)
		}
	}
	return matched, nil
}

// Search returns the user's assets whose name contains the query,
// case-insensitively.
func (vs *ViewService) Search(ctx context.Context, userID primitive.ObjectID, query string) (*models.AssetListing, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	listing := &models.AssetListing{Folders: []models.Folder{}, Files: []models.File{}}
	if needle == "" {
		return listing, nil
	}

	folders, err := vs.store.UserFolders(ctx, userID, SortByNameDesc)
	if err != nil {
		return nil, err
	}
	files, err := vs.store.UserFiles(ctx, userID, SortByNameDesc)
	if err != nil {
		return nil, err
	}

	for _, folder := range folders {
		if strings.Contains(strings.ToLower(folder.Name), needle) {
			listing.Folders = append(listing.Folders, folder)
		}
	}
	for _, file := range files {
		if strings.Contains(strings.ToLower(file.Name), needle) {
			listing.Files = append(listing.Files, file)
		}
	}
	return listing, nil
}
