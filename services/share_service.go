package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cloudnest/models"
	"cloudnest/utils"
)

// ShareService issues and resolves share links. A link snapshots the
// asset's name and location at creation and never follows later renames.
type ShareService struct {
	store AssetStore
}

func NewShareService(store AssetStore) *ShareService {
	return &ShareService{store: store}
}

// GenerateLink creates a share for a file or folder the caller owns. The
// never duration stores a nil expiry.
func (shs *ShareService) GenerateLink(ctx context.Context, userID, assetID primitive.ObjectID, assetType string, duration models.ShareDuration) (*models.Share, error) {
	ttl, ok := duration.TTL()
	if !ok {
		return nil, ErrInvalidShare
	}

	share := &models.Share{
		ID:        uuid.NewString(),
		UserID:    userID,
		AssetID:   assetID,
		AssetType: assetType,
		CreatedAt: time.Now().UTC(),
	}

	switch assetType {
	case models.ShareAssetFile:
		file, err := shs.store.FileByID(ctx, assetID)
		if err != nil {
			return nil, err
		}
		if err := authorize(userID, file.UserID, file.Location); err != nil {
			return nil, err
		}
		share.AssetName = file.Name
		share.AssetLocation = file.Location
	case models.ShareAssetFolder:
		folder, err := shs.store.FolderByID(ctx, assetID)
		if err != nil {
			return nil, err
		}
		path := utils.CanonicalPath(folder.Location, folder.Name)
		if err := authorize(userID, folder.UserID, path); err != nil {
			return nil, err
		}
		share.AssetName = folder.Name
		share.AssetLocation = folder.Location
	default:
		return nil, ErrInvalidShare
	}

	if duration != models.ShareNever {
		expires := share.CreatedAt.Add(ttl)
		share.Expires = &expires
	}

	if err := shs.store.CreateShare(ctx, share); err != nil {
		return nil, err
	}
	return share, nil
}

// ResolveLink returns the share snapshot when the link exists and has not
// expired. Expiry is judged against the wall clock at resolution time, so
// resolving is idempotent and a link can flip from valid to invalid but
// never back.
func (shs *ShareService) ResolveLink(ctx context.Context, id string) (*models.Share, error) {
	share, err := shs.store.ShareByID(ctx, id)
	if err != nil {
		return nil, ErrInvalidShare
	}
	if share.Expires != nil && share.Expires.Before(time.Now()) {
		return nil, ErrInvalidShare
	}
	return share, nil
}

// RevokeLink deletes a share the caller issued.
func (shs *ShareService) RevokeLink(ctx context.Context, userID primitive.ObjectID, id string) error {
	share, err := shs.store.ShareByID(ctx, id)
	if err != nil {
		return err
	}
	if share.UserID != userID {
		return ErrUnauthorized
	}
	return shs.store.DeleteShare(ctx, id)
}
