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

func newShareFixture(t *testing.T) (*ShareService, *memStore, primitive.ObjectID, models.File) {
	t.Helper()

	store := newMemStore()
	userID := primitive.NewObjectID()
	file := models.File{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      "a.png",
		Location:  userID.Hex(),
		Type:      "png",
		AssetID:   userID.Hex() + "/a.png",
		Size:      42,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.CreateFile(context.Background(), &file))

	return NewShareService(store), store, userID, file
}

func TestGenerateLink(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots the asset", func(t *testing.T) {
		shares, _, userID, file := newShareFixture(t)

		share, err := shares.GenerateLink(ctx, userID, file.ID, models.ShareAssetFile, models.ShareOneDay)
		require.NoError(t, err)

		assert.NotEmpty(t, share.ID)
		assert.Equal(t, "a.png", share.AssetName)
		assert.Equal(t, file.Location, share.AssetLocation)
		require.NotNil(t, share.Expires)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), *share.Expires, time.Minute)
	})

	t.Run("never duration stores no expiry", func(t *testing.T) {
		shares, _, userID, file := newShareFixture(t)

		share, err := shares.GenerateLink(ctx, userID, file.ID, models.ShareAssetFile, models.ShareNever)
		require.NoError(t, err)
		assert.Nil(t, share.Expires)
	})

	t.Run("rejects a foreign asset", func(t *testing.T) {
		shares, _, _, file := newShareFixture(t)

		_, err := shares.GenerateLink(ctx, primitive.NewObjectID(), file.ID, models.ShareAssetFile, models.ShareOneDay)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("rejects an unknown duration", func(t *testing.T) {
		shares, _, userID, file := newShareFixture(t)

		_, err := shares.GenerateLink(ctx, userID, file.ID, models.ShareAssetFile, models.ShareDuration("2years"))
		assert.ErrorIs(t, err, ErrInvalidShare)
	})

	t.Run("snapshot does not follow renames", func(t *testing.T) {
		shares, store, userID, file := newShareFixture(t)

		share, err := shares.GenerateLink(ctx, userID, file.ID, models.ShareAssetFile, models.ShareOneWeek)
		require.NoError(t, err)

		require.NoError(t, store.RenameFile(ctx, file.ID, "b.png", "png", userID.Hex()+"/b.png", ""))

		resolved, err := shares.ResolveLink(ctx, share.ID)
		require.NoError(t, err)
		assert.Equal(t, "a.png", resolved.AssetName)
	})
}

func TestResolveLink(t *testing.T) {
	ctx := context.Background()

	t.Run("resolving is idempotent", func(t *testing.T) {
		shares, _, userID, file := newShareFixture(t)
		share, err := shares.GenerateLink(ctx, userID, file.ID, models.ShareAssetFile, models.ShareOneHour)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			resolved, err := shares.ResolveLink(ctx, share.ID)
			require.NoError(t, err)
			assert.Equal(t, share.ID, resolved.ID)
		}
	})

	t.Run("rejects an unknown id", func(t *testing.T) {
		shares, _, _, _ := newShareFixture(t)

		_, err := shares.ResolveLink(ctx, "no-such-share")
		assert.ErrorIs(t, err, ErrInvalidShare)
	})

	t.Run("rejects a past expiry", func(t *testing.T) {
		shares, store, userID, file := newShareFixture(t)

		expired := time.Now().Add(-time.Minute)
		require.NoError(t, store.CreateShare(ctx, &models.Share{
			ID:        "expired-share",
			UserID:    userID,
			AssetID:   file.ID,
			AssetType: models.ShareAssetFile,
			AssetName: file.Name,
			CreatedAt: time.Now().Add(-2 * time.Hour),
			Expires:   &expired,
		}))

		_, err := shares.ResolveLink(ctx, "expired-share")
		assert.ErrorIs(t, err, ErrInvalidShare)
	})
}

func TestRevokeLink(t *testing.T) {
	ctx := context.Background()
	shares, _, userID, file := newShareFixture(t)

	share, err := shares.GenerateLink(ctx, userID, file.ID, models.ShareAssetFile, models.ShareThirtyDays)
	require.NoError(t, err)

	t.Run("only the issuer can revoke", func(t *testing.T) {
		err := shares.RevokeLink(ctx, primitive.NewObjectID(), share.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("revoked links stop resolving", func(t *testing.T) {
		require.NoError(t, shares.RevokeLink(ctx, userID, share.ID))

		_, err := shares.ResolveLink(ctx, share.ID)
		assert.ErrorIs(t, err, ErrInvalidShare)
	})
}
