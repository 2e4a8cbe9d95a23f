package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cloudnest/models"
)

func seedViewStore(t *testing.T) (*ViewService, primitive.ObjectID) {
	t.Helper()

	store := newMemStore()
	userID := primitive.NewObjectID()
	root := userID.Hex()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateFolder(ctx, &models.Folder{
		ID: primitive.NewObjectID(), UserID: userID, Name: root, Location: "", CreatedAt: base,
	}))
	require.NoError(t, store.CreateFolder(ctx, &models.Folder{
		ID: primitive.NewObjectID(), UserID: userID, Name: "docs", Location: root,
		Starred: true, CreatedAt: base.Add(time.Hour),
	}))
	require.NoError(t, store.CreateFolder(ctx, &models.Folder{
		ID: primitive.NewObjectID(), UserID: userID, Name: "pics", Location: root,
		Pinned: true, CreatedAt: base.Add(2 * time.Hour),
	}))
	// A folder younger than some files, so the recent view has to
	// interleave the two kinds.
	require.NoError(t, store.CreateFolder(ctx, &models.Folder{
		ID: primitive.NewObjectID(), UserID: userID, Name: "fresh", Location: root + "/docs",
		CreatedAt: base.Add(4*time.Hour + 30*time.Minute),
	}))

	files := []models.File{
		{Name: "movie.mp4", Type: "mp4", Location: root, CreatedAt: base.Add(3 * time.Hour)},
		{Name: "photo.jpg", Type: "jpg", Location: root + "/pics", Starred: true, CreatedAt: base.Add(4 * time.Hour)},
		{Name: "notes.txt", Type: "txt", Location: root + "/docs", CreatedAt: base.Add(5 * time.Hour)},
		{Name: "data.bin", Type: "bin", Location: root, CreatedAt: base.Add(6 * time.Hour)},
	}
	for i := range files {
		files[i].ID = primitive.NewObjectID()
		files[i].UserID = userID
		files[i].AssetID = files[i].Location + "/" + files[i].Name
		require.NoError(t, store.CreateFile(ctx, &files[i]))
	}

	return NewViewService(store), userID
}

func fileNames(files []models.File) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names
}

func TestListFolder(t *testing.T) {
	views, userID := seedViewStore(t)
	ctx := context.Background()
	root := userID.Hex()

	t.Run("lists direct children only", func(t *testing.T) {
		listing, err := views.ListFolder(ctx, userID, root, SortByNameDesc)
		require.NoError(t, err)

		assert.Len(t, listing.Folders, 2)
		assert.ElementsMatch(t, []string{"movie.mp4", "data.bin"}, fileNames(listing.Files))
	})

	t.Run("rejects a foreign path", func(t *testing.T) {
		_, err := views.ListFolder(ctx, primitive.NewObjectID(), root, SortByNameDesc)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("missing folder is not found", func(t *testing.T) {
		_, err := views.ListFolder(ctx, userID, root+"/nope", SortByNameDesc)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRecent(t *testing.T) {
	views, userID := seedViewStore(t)
	root := userID.Hex()

	entries, err := views.Recent(context.Background(), userID)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	kinds := make([]string, 0, len(entries))
	for _, entry := range entries {
		kinds = append(kinds, entry.Kind)
		switch entry.Kind {
		case "file":
			names = append(names, entry.File.Name)
		case "folder":
			names = append(names, entry.Folder.Name)
		}
	}

	// One sequence, newest first, folders interleaved with files by date.
	assert.Equal(t, []string{"data.bin", "notes.txt", "fresh", "photo.jpg", "movie.mp4", "pics", "docs", root}, names)
	assert.Equal(t, []string{"file", "file", "folder", "file", "file", "folder", "folder", "folder"}, kinds)
}

func TestStarredAndPinned(t *testing.T) {
	views, userID := seedViewStore(t)
	ctx := context.Background()

	listing, err := views.Starred(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listing.Folders, 1)
	assert.Equal(t, "docs", listing.Folders[0].Name)
	assert.Equal(t, []string{"photo.jpg"}, fileNames(listing.Files))

	pinned, err := views.Pinned(ctx, userID)
	require.NoError(t, err)
	require.Len(t, pinned, 1)
	assert.Equal(t, "pics", pinned[0].Name)
}

func TestCategoryViews(t *testing.T) {
	views, userID := seedViewStore(t)
	ctx := context.Background()

	t.Run("mp4 shows under videos only", func(t *testing.T) {
		videos, err := views.Videos(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []string{"movie.mp4"}, fileNames(videos))

		photos, err := views.Photos(ctx, userID)
		require.NoError(t, err)
		assert.NotContains(t, fileNames(photos), "movie.mp4")

		documents, err := views.Documents(ctx, userID)
		require.NoError(t, err)
		assert.NotContains(t, fileNames(documents), "movie.mp4")
	})

	t.Run("unknown extensions match no category", func(t *testing.T) {
		for _, view := range []func(context.Context, primitive.ObjectID) ([]models.File, error){
			views.Photos, views.Videos, views.Documents,
		} {
			files, err := view(ctx, userID)
			require.NoError(t, err)
			assert.NotContains(t, fileNames(files), "data.bin")
		}
	})

	t.Run("category ignores folder location", func(t *testing.T) {
		photos, err := views.Photos(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []string{"photo.jpg"}, fileNames(photos))
	})
}

func TestSearch(t *testing.T) {
	views, userID := seedViewStore(t)
	ctx := context.Background()

	t.Run("matches case-insensitively", func(t *testing.T) {
		listing, err := views.Search(ctx, userID, "MOVIE")
		require.NoError(t, err)
		assert.Equal(t, []string{"movie.mp4"}, fileNames(listing.Files))
	})

	t.Run("matches folders too", func(t *testing.T) {
		listing, err := views.Search(ctx, userID, "doc")
		require.NoError(t, err)
		require.Len(t, listing.Folders, 1)
		assert.Equal(t, "docs", listing.Folders[0].Name)
	})

	t.Run("empty query matches nothing", func(t *testing.T) {
		listing, err := views.Search(ctx, userID, "   ")
		require.NoError(t, err)
		assert.Empty(t, listing.Files)
		assert.Empty(t, listing.Folders)
	})
}
