package services

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cloudnest/models"
	"cloudnest/utils"
)

// memStore is an in-memory AssetStore with the same semantics as the Mongo
// implementation: ErrNotFound for missing rows, ErrConflict for uniqueness
// violations, size clamped at zero.
type memStore struct {
	mu      sync.Mutex
	users   map[primitive.ObjectID]*models.User
	files   map[primitive.ObjectID]*models.File
	folders map[primitive.ObjectID]*models.Folder
	shares  map[string]*models.Share
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[primitive.ObjectID]*models.User),
		files:   make(map[primitive.ObjectID]*models.File),
		folders: make(map[primitive.ObjectID]*models.Folder),
		shares:  make(map[string]*models.Share),
	}
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return ErrConflict
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memStore) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (m *memStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) CreateFile(ctx context.Context, file *models.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.files {
		if f.AssetID == file.AssetID {
			return ErrConflict
		}
	}
	clone := *file
	m.files[file.ID] = &clone
	return nil
}

func (m *memStore) CreateFolder(ctx context.Context, folder *models.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.folders {
		if f.UserID == folder.UserID && f.Location == folder.Location && f.Name == folder.Name {
			return ErrConflict
		}
	}
	clone := *folder
	m.folders[folder.ID] = &clone
	return nil
}

func (m *memStore) FileByID(ctx context.Context, id primitive.ObjectID) (*models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[id]; ok {
		clone := *f
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (m *memStore) FolderByID(ctx context.Context, id primitive.ObjectID) (*models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.folders[id]; ok {
		clone := *f
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (m *memStore) FolderByPath(ctx context.Context, userID primitive.ObjectID, path string) (*models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.folders {
		if f.UserID == userID && utils.CanonicalPath(f.Location, f.Name) == path {
			clone := *f
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func sortFiles(files []models.File, s ListSort) {
	sort.Slice(files, func(i, j int) bool {
		if s == SortByDateDesc {
			return files[i].CreatedAt.After(files[j].CreatedAt)
		}
		return files[i].Name > files[j].Name
	})
}

func sortFolders(folders []models.Folder, s ListSort) {
	sort.Slice(folders, func(i, j int) bool {
		if s == SortByDateDesc {
			return folders[i].CreatedAt.After(folders[j].CreatedAt)
		}
		return folders[i].Name > folders[j].Name
	})
}

func (m *memStore) FilesByLocation(ctx context.Context, userID primitive.ObjectID, location string, s ListSort) ([]models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.File{}
	for _, f := range m.files {
		if f.UserID == userID && f.Location == location {
			out = append(out, *f)
		}
	}
	sortFiles(out, s)
	return out, nil
}

func (m *memStore) FoldersByLocation(ctx context.Context, userID primitive.ObjectID, location string, s ListSort) ([]models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Folder{}
	for _, f := range m.folders {
		if f.UserID == userID && f.Location == location {
			out = append(out, *f)
		}
	}
	sortFolders(out, s)
	return out, nil
}

func (m *memStore) UserFiles(ctx context.Context, userID primitive.ObjectID, s ListSort) ([]models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.File{}
	for _, f := range m.files {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	sortFiles(out, s)
	return out, nil
}

func (m *memStore) UserFolders(ctx context.Context, userID primitive.ObjectID, s ListSort) ([]models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Folder{}
	for _, f := range m.folders {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	sortFolders(out, s)
	return out, nil
}

func (m *memStore) SubtreeByPath(ctx context.Context, userID primitive.ObjectID, path string) (*Subtree, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subtree := &Subtree{}
	for _, f := range m.files {
		if f.UserID == userID && utils.IsSubtree(path, f.Location) {
			subtree.Files = append(subtree.Files, *f)
		}
	}
	for _, f := range m.folders {
		if f.UserID == userID && utils.IsSubtree(path, f.Location) {
			subtree.Folders = append(subtree.Folders, *f)
		}
	}
	return subtree, nil
}

func (m *memStore) SetFileStarred(ctx context.Context, id primitive.ObjectID, starred bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok {
		return ErrNotFound
	}
	f.Starred = starred
	return nil
}

func (m *memStore) SetFolderStarred(ctx context.Context, id primitive.ObjectID, starred bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.folders[id]
	if !ok {
		return ErrNotFound
	}
	f.Starred = starred
	return nil
}

func (m *memStore) SetFolderPinned(ctx context.Context, id primitive.ObjectID, pinned bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.folders[id]
	if !ok {
		return ErrNotFound
	}
	f.Pinned = pinned
	return nil
}

func (m *memStore) IncrementFolderSize(ctx context.Context, id primitive.ObjectID, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.folders[id]
	if !ok {
		return ErrNotFound
	}
	f.Size += delta
	if f.Size < 0 {
		f.Size = 0
	}
	return nil
}

func (m *memStore) RenameFile(ctx context.Context, id primitive.ObjectID, newName, newType, newAssetID, newURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok {
		return ErrNotFound
	}
	f.Name = newName
	f.Type = newType
	f.AssetID = newAssetID
	f.URL = newURL
	return nil
}

func (m *memStore) RenameFolder(ctx context.Context, id primitive.ObjectID, newName, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.folders[id]
	if !ok {
		return ErrNotFound
	}
	f.Name = newName
	f.OriginalNameAndPath = newPath
	return nil
}

func (m *memStore) RewriteDescendantPaths(ctx context.Context, userID primitive.ObjectID, oldPrefix, newPrefix string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rewritten int64
	for _, f := range m.files {
		if f.UserID != userID {
			continue
		}
		if loc, ok := utils.RewritePrefix(f.Location, oldPrefix, newPrefix); ok {
			f.Location = loc
			f.AssetID, _ = utils.RewritePrefix(f.AssetID, oldPrefix, newPrefix)
			rewritten++
		}
	}
	for _, f := range m.folders {
		if f.UserID != userID {
			continue
		}
		if loc, ok := utils.RewritePrefix(f.Location, oldPrefix, newPrefix); ok {
			f.Location = loc
			f.OriginalNameAndPath, _ = utils.RewritePrefix(f.OriginalNameAndPath, oldPrefix, newPrefix)
			rewritten++
		}
	}
	return rewritten, nil
}

func (m *memStore) DeleteFiles(ctx context.Context, ids []primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.files, id)
	}
	return nil
}

func (m *memStore) DeleteFolders(ctx context.Context, ids []primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.folders, id)
	}
	return nil
}

func (m *memStore) CreateShare(ctx context.Context, share *models.Share) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *share
	m.shares[share.ID] = &clone
	return nil
}

func (m *memStore) ShareByID(ctx context.Context, id string) (*models.Share, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.shares[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (m *memStore) DeleteShare(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.shares, id)
	return nil
}
