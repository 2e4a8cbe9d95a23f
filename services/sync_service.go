package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cloudnest/models"
	"cloudnest/storage"
	"cloudnest/utils"
)

// deleteFolderRetries bounds the DeleteByPrefix-then-retry loop when the
// remote backend keeps reporting a folder as non-empty.
const deleteFolderRetries = 3

// FileUpload is one file handed to UploadFiles.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// SyncService is the hierarchy synchronizer. Every mutation applies the
// remote side first and writes metadata only after the remote step
// succeeded, so a metadata row never references a remote object that was
// not created. Multi-step operations hold a per-subtree lock for their
// whole duration.
type SyncService struct {
	store  AssetStore
	remote storage.RemoteStorage
	locks  *pathLock
}

func NewSyncService(store AssetStore, remote storage.RemoteStorage) *SyncService {
	return &SyncService{
		store:  store,
		remote: remote,
		locks:  newPathLock(),
	}
}

func remoteErr(op string, err error) error {
	logrus.WithError(err).WithField("op", op).Error("remote storage operation failed")
	return fmt.Errorf("%s: %w", op, ErrRemoteUnavailable)
}

// authorize rejects any asset whose owning user or path root is not the
// caller. Rejection happens before any side effect.
func authorize(userID, ownerID primitive.ObjectID, path string) error {
	if ownerID != userID || !utils.IsSubtree(userID.Hex(), path) {
		return ErrUnauthorized
	}
	return nil
}

// adjustAncestorSizes applies a size delta to every folder enclosing the
// location, the location's own folder included.
func (ss *SyncService) adjustAncestorSizes(ctx context.Context, userID primitive.ObjectID, location string, delta int64) error {
	for _, ancestorPath := range utils.PathAncestors(location) {
		folder, err := ss.store.FolderByPath(ctx, userID, ancestorPath)
		if err != nil {
			logrus.WithError(err).WithField("path", ancestorPath).Error("ancestor lookup failed during size accounting")
			return err
		}
		if err := ss.store.IncrementFolderSize(ctx, folder.ID, delta); err != nil {
			return err
		}
	}
	return nil
}

// UploadFiles stores each file remotely and records its row, one file at a
// time. A failure mid-batch returns the files already recorded together
// with the error; earlier files stay stored.
func (ss *SyncService) UploadFiles(ctx context.Context, userID primitive.ObjectID, folderPath string, uploads []FileUpload, starred bool) ([]models.File, error) {
	if !utils.IsSubtree(userID.Hex(), folderPath) {
		return nil, ErrUnauthorized
	}
	if _, err := ss.store.FolderByPath(ctx, userID, folderPath); err != nil {
		return nil, err
	}

	ss.locks.Lock(folderPath)
	defer ss.locks.Unlock(folderPath)

	created := make([]models.File, 0, len(uploads))
	for _, upload := range uploads {
		// Browsers may submit relative paths as filenames. Only the last
		// segment survives; anything still unusable is rejected before the
		// remote write.
		name := path.Base(upload.Name)
		if !utils.IsValidAssetName(name) {
			return created, fmt.Errorf("upload %q: %w", upload.Name, ErrInvalidName)
		}
		result, err := ss.remote.Upload(ctx, upload.Data, upload.ContentType, name, folderPath)
		if err != nil {
			return created, remoteErr("upload "+upload.Name, err)
		}

		file := &models.File{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Name:      result.ResolvedName,
			Location:  folderPath,
			Type:      utils.FileExt(result.ResolvedName),
			AssetID:   result.ObjectID,
			PublicID:  result.PublicRef,
			URL:       result.URL,
			Size:      result.Size,
			Starred:   starred,
			CreatedAt: result.CreatedAt,
		}
		if err := ss.store.CreateFile(ctx, file); err != nil {
			logrus.WithFields(logrus.Fields{
				"asset_id": result.ObjectID,
				"path":     folderPath,
			}).Error("remote object stored but metadata row failed")
			return created, err
		}
		if err := ss.adjustAncestorSizes(ctx, userID, folderPath, result.Size); err != nil {
			return created, err
		}
		created = append(created, *file)
	}
	return created, nil
}

// CreateFolder creates the remote folder first, then the metadata row. A
// name already present at the location is rejected before any side effect.
func (ss *SyncService) CreateFolder(ctx context.Context, userID primitive.ObjectID, location, name string, starred bool) (*models.Folder, error) {
	if !utils.IsValidAssetName(name) {
		return nil, ErrInvalidName
	}
	if !utils.IsSubtree(userID.Hex(), location) {
		return nil, ErrUnauthorized
	}
	if _, err := ss.store.FolderByPath(ctx, userID, location); err != nil {
		return nil, err
	}

	path := utils.CanonicalPath(location, name)
	if _, err := ss.store.FolderByPath(ctx, userID, path); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	ss.locks.Lock(path)
	defer ss.locks.Unlock(path)

	if err := ss.remote.CreateFolder(ctx, path); err != nil {
		return nil, remoteErr("create folder", err)
	}

	folder := &models.Folder{
		ID:                  primitive.NewObjectID(),
		UserID:              userID,
		Name:                name,
		Location:            location,
		Starred:             starred,
		OriginalNameAndPath: path,
		CreatedAt:           time.Now().UTC(),
	}
	if err := ss.store.CreateFolder(ctx, folder); err != nil {
		logrus.WithField("path", path).Error("remote folder created but metadata row failed")
		return nil, err
	}
	return folder, nil
}

// RenameFile renames the remote object, then the row. The row keeps its
// location; name, extension type, object key and url change together.
func (ss *SyncService) RenameFile(ctx context.Context, userID, fileID primitive.ObjectID, newName string) (*models.File, error) {
	if !utils.IsValidAssetName(newName) {
		return nil, ErrInvalidName
	}
	file, err := ss.store.FileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if err := authorize(userID, file.UserID, file.Location); err != nil {
		return nil, err
	}

	ss.locks.Lock(file.Location)
	defer ss.locks.Unlock(file.Location)

	result, err := ss.remote.RenameObject(ctx, file.AssetID, newName)
	if err != nil {
		return nil, remoteErr("rename object", err)
	}

	newType := utils.FileExt(newName)
	if err := ss.store.RenameFile(ctx, file.ID, newName, newType, result.ObjectID, result.URL); err != nil {
		return nil, err
	}

	file.Name = newName
	file.Type = newType
	file.AssetID = result.ObjectID
	file.URL = result.URL
	return file, nil
}

// RenameFolder renames the remote folder, then the folder's own row, then
// rewrites every descendant row's path prefix as one unit. The root folder
// cannot be renamed.
func (ss *SyncService) RenameFolder(ctx context.Context, userID, folderID primitive.ObjectID, newName string) (*models.Folder, error) {
	if !utils.IsValidAssetName(newName) {
		return nil, ErrInvalidName
	}
	folder, err := ss.store.FolderByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	path := utils.CanonicalPath(folder.Location, folder.Name)
	if err := authorize(userID, folder.UserID, path); err != nil {
		return nil, err
	}
	if folder.Location == "" {
		return nil, ErrUnauthorized
	}

	newPath := utils.CanonicalPath(folder.Location, newName)
	if _, err := ss.store.FolderByPath(ctx, userID, newPath); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	ss.locks.Lock(path)
	defer ss.locks.Unlock(path)

	if err := ss.remote.RenameFolder(ctx, path, newPath); err != nil {
		return nil, remoteErr("rename folder", err)
	}

	if err := ss.store.RenameFolder(ctx, folder.ID, newName, newPath); err != nil {
		return nil, err
	}
	rewritten, err := ss.store.RewriteDescendantPaths(ctx, userID, path, newPath)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"old_path":  path,
		"new_path":  newPath,
		"rewritten": rewritten,
	}).Info("folder renamed")

	folder.Name = newName
	folder.OriginalNameAndPath = newPath
	return folder, nil
}

// DeleteFile deletes the remote object, then the row, then decrements the
// enclosing folders' sizes.
func (ss *SyncService) DeleteFile(ctx context.Context, userID, fileID primitive.ObjectID) error {
	file, err := ss.store.FileByID(ctx, fileID)
	if err != nil {
		return err
	}
	if err := authorize(userID, file.UserID, file.Location); err != nil {
		return err
	}

	ss.locks.Lock(file.Location)
	defer ss.locks.Unlock(file.Location)

	if err := ss.remote.DeleteObjects(ctx, []string{file.AssetID}); err != nil {
		return remoteErr("delete object", err)
	}
	if err := ss.store.DeleteFiles(ctx, []primitive.ObjectID{file.ID}); err != nil {
		return err
	}
	return ss.adjustAncestorSizes(ctx, userID, file.Location, -file.Size)
}

// DeleteFolder deletes a folder and everything under it. Remote side goes
// first: contained objects, then the folder itself, wiping the prefix and
// retrying when the backend still reports stragglers. Metadata rows are
// removed only after the remote side is clear, and the enclosing folders'
// sizes drop by the total bytes removed. The root folder cannot be deleted.
func (ss *SyncService) DeleteFolder(ctx context.Context, userID, folderID primitive.ObjectID) error {
	folder, err := ss.store.FolderByID(ctx, folderID)
	if err != nil {
		return err
	}
	path := utils.CanonicalPath(folder.Location, folder.Name)
	if err := authorize(userID, folder.UserID, path); err != nil {
		return err
	}
	if folder.Location == "" {
		return ErrUnauthorized
	}

	ss.locks.Lock(path)
	defer ss.locks.Unlock(path)

	subtree, err := ss.store.SubtreeByPath(ctx, userID, path)
	if err != nil {
		return err
	}

	objectIDs := make([]string, 0, len(subtree.Files))
	var totalBytes int64
	for _, file := range subtree.Files {
		objectIDs = append(objectIDs, file.AssetID)
		totalBytes += file.Size
	}

	if err := ss.remote.DeleteObjects(ctx, objectIDs); err != nil {
		return remoteErr("delete objects", err)
	}

	for attempt := 0; ; attempt++ {
		err = ss.remote.DeleteFolder(ctx, path)
		if err == nil {
			break
		}
		if !errors.Is(err, storage.ErrFolderNotEmpty) || attempt >= deleteFolderRetries {
			return remoteErr("delete folder", err)
		}
		logrus.WithFields(logrus.Fields{
			"path":    path,
			"attempt": attempt + 1,
		}).Warn("remote folder still not empty, wiping prefix")
		if err := ss.remote.DeleteByPrefix(ctx, path); err != nil {
			return remoteErr("wipe prefix", err)
		}
	}

	fileIDs := make([]primitive.ObjectID, 0, len(subtree.Files))
	for _, file := range subtree.Files {
		fileIDs = append(fileIDs, file.ID)
	}
	folderIDs := make([]primitive.ObjectID, 0, len(subtree.Folders)+1)
	for _, sub := range subtree.Folders {
		folderIDs = append(folderIDs, sub.ID)
	}
	folderIDs = append(folderIDs, folder.ID)

	if err := ss.store.DeleteFiles(ctx, fileIDs); err != nil {
		return err
	}
	if err := ss.store.DeleteFolders(ctx, folderIDs); err != nil {
		return err
	}

	if totalBytes > 0 {
		return ss.adjustAncestorSizes(ctx, userID, folder.Location, -totalBytes)
	}
	return nil
}

// ToggleFileStar flips a file's starred flag and returns the new value.
func (ss *SyncService) ToggleFileStar(ctx context.Context, userID, fileID primitive.ObjectID) (bool, error) {
	file, err := ss.store.FileByID(ctx, fileID)
	if err != nil {
		return false, err
	}
	if err := authorize(userID, file.UserID, file.Location); err != nil {
		return false, err
	}
	if err := ss.store.SetFileStarred(ctx, file.ID, !file.Starred); err != nil {
		return false, err
	}
	return !file.Starred, nil
}

// ToggleFolderStar flips a folder's starred flag and returns the new value.
func (ss *SyncService) ToggleFolderStar(ctx context.Context, userID, folderID primitive.ObjectID) (bool, error) {
	folder, err := ss.store.FolderByID(ctx, folderID)
	if err != nil {
		return false, err
	}
	if err := authorize(userID, folder.UserID, utils.CanonicalPath(folder.Location, folder.Name)); err != nil {
		return false, err
	}
	if err := ss.store.SetFolderStarred(ctx, folder.ID, !folder.Starred); err != nil {
		return false, err
	}
	return !folder.Starred, nil
}

// ToggleFolderPin flips a folder's pinned flag and returns the new value.
func (ss *SyncService) ToggleFolderPin(ctx context.Context, userID, folderID primitive.ObjectID) (bool, error) {
	folder, err := ss.store.FolderByID(ctx, folderID)
	if err != nil {
		return false, err
	}
	if err := authorize(userID, folder.UserID, utils.CanonicalPath(folder.Location, folder.Name)); err != nil {
		return false, err
	}
	if err := ss.store.SetFolderPinned(ctx, folder.ID, !folder.Pinned); err != nil {
		return false, err
	}
	return !folder.Pinned, nil
}

// DownloadURL resolves a short-lived download link for a file straight
// from the remote backend, so folder renames never serve a stale address.
func (ss *SyncService) DownloadURL(ctx context.Context, userID, fileID primitive.ObjectID, attachment bool) (string, error) {
	file, err := ss.store.FileByID(ctx, fileID)
	if err != nil {
		return "", err
	}
	if err := authorize(userID, file.UserID, file.Location); err != nil {
		return "", err
	}
	url, err := ss.remote.ResolveDownloadURL(ctx, file.AssetID, "", attachment)
	if err != nil {
		return "", remoteErr("resolve download url", err)
	}
	return url, nil
}
