package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"cloudnest/models"
)

// LocalClient implements RemoteStorage on the local filesystem. Folders map
// to directories and object keys to file paths, so the backend has the same
// independent folder notion as an object store. Used as the development
// default and as the test backend.
type LocalClient struct {
	basePath string
	baseURL  string
}

// NewLocalClient creates a local storage client rooted at the provider's
// base path.
func NewLocalClient(provider *models.StorageProvider) (*LocalClient, error) {
	basePath := provider.BasePath
	if basePath == "" {
		basePath = "./uploads"
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %v", err)
	}

	baseURL := strings.TrimRight(provider.CDNUrl, "/")
	if baseURL == "" {
		baseURL = "/objects"
	}

	return &LocalClient{basePath: basePath, baseURL: baseURL}, nil
}

func (l *LocalClient) fullPath(key string) string {
	return filepath.Join(l.basePath, filepath.FromSlash(key))
}

func (l *LocalClient) objectURL(key string) string {
	return l.baseURL + "/" + key
}

// Upload writes data under folderPath, suffixing the name with " (n)" until
// it no longer collides.
func (l *LocalClient) Upload(ctx context.Context, data []byte, contentType, name, folderPath string) (*UploadResult, error) {
	dir := l.fullPath(folderPath)
	if _, err := os.Stat(dir); err != nil {
		return nil, NewStorageError("local", "FOLDER_MISSING", err.Error(), folderPath)
	}

	base, ext := name, ""
	if idx := strings.LastIndex(name, "."); idx > 0 {
		base, ext = name[:idx], name[idx:]
	}

	resolved := name
	renamed := false
	for counter := 1; ; counter++ {
		if _, err := os.Stat(filepath.Join(dir, resolved)); os.IsNotExist(err) {
			break
		}
		resolved = fmt.Sprintf("%s (%d)%s", base, counter, ext)
		renamed = true
	}

	key := folderPath + "/" + resolved
	if err := os.WriteFile(l.fullPath(key), data, 0644); err != nil {
		return nil, NewStorageError("local", "UPLOAD_FAILED", err.Error(), key)
	}

	return &UploadResult{
		ObjectID:     key,
		PublicRef:    uuid.NewString(),
		URL:          l.objectURL(key),
		Size:         int64(len(data)),
		CreatedAt:    time.Now().UTC(),
		ResolvedName: resolved,
		ResolvedPath: folderPath,
		Renamed:      renamed,
	}, nil
}

func (l *LocalClient) CreateFolder(ctx context.Context, path string) error {
	if err := os.MkdirAll(l.fullPath(path), 0755); err != nil {
		return NewStorageError("local", "CREATE_FOLDER_FAILED", err.Error(), path)
	}
	return nil
}

func (l *LocalClient) RenameFolder(ctx context.Context, oldPath, newPath string) error {
	if err := os.Rename(l.fullPath(oldPath), l.fullPath(newPath)); err != nil {
		return NewStorageError("local", "RENAME_FOLDER_FAILED", err.Error(), oldPath)
	}
	return nil
}

func (l *LocalClient) DeleteFolder(ctx context.Context, path string) error {
	dir := l.fullPath(path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return NewStorageError("local", "DELETE_FOLDER_FAILED", err.Error(), path)
	}
	if len(entries) > 0 {
		return ErrFolderNotEmpty
	}

	if err := os.Remove(dir); err != nil {
		return NewStorageError("local", "DELETE_FOLDER_FAILED", err.Error(), path)
	}
	return nil
}

func (l *LocalClient) DeleteObjects(ctx context.Context, objectIDs []string) error {
	for _, key := range objectIDs {
		if err := os.Remove(l.fullPath(key)); err != nil && !os.IsNotExist(err) {
			return NewStorageError("local", "DELETE_FAILED", err.Error(), key)
		}
	}
	return nil
}

func (l *LocalClient) DeleteByPrefix(ctx context.Context, prefix string) error {
	dir := l.fullPath(prefix)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return NewStorageError("local", "WIPE_FAILED", err.Error(), prefix)
	}

	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return NewStorageError("local", "WIPE_FAILED", err.Error(), prefix)
		}
	}
	return nil
}

func (l *LocalClient) RenameObject(ctx context.Context, objectID, newName string) (*RenameResult, error) {
	src := l.fullPath(objectID)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil, ErrObjectNotFound
	}

	dir := objectID
	if idx := strings.LastIndex(objectID, "/"); idx >= 0 {
		dir = objectID[:idx]
	}
	destKey := dir + "/" + newName

	if err := os.Rename(src, l.fullPath(destKey)); err != nil {
		return nil, NewStorageError("local", "RENAME_FAILED", err.Error(), objectID)
	}

	return &RenameResult{ObjectID: destKey, URL: l.objectURL(destKey)}, nil
}

func (l *LocalClient) ResolveDownloadURL(ctx context.Context, objectID, versionID string, attachment bool) (string, error) {
	if _, err := os.Stat(l.fullPath(objectID)); err != nil {
		if os.IsNotExist(err) {
			return "", ErrObjectNotFound
		}
		return "", NewStorageError("local", "RESOLVE_FAILED", err.Error(), objectID)
	}

	u := l.objectURL(objectID)
	if attachment {
		u += "?disposition=" + url.QueryEscape("attachment")
	}
	return u, nil
}

func (l *LocalClient) HealthCheck() error {
	if _, err := os.Stat(l.basePath); err != nil {
		return NewStorageError("local", "HEALTH_CHECK_FAILED", err.Error(), "")
	}
	return nil
}
