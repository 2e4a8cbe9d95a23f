package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// File is the metadata row for a remote object. Location is the canonical
// path of the containing folder; AssetID is the remote object key and
// PublicID its stable secondary identifier.
type File struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Location  string             `bson:"location" json:"location"`
	Type      string             `bson:"type" json:"type"`
	AssetID   string             `bson:"asset_id" json:"asset_id"`
	PublicID  string             `bson:"public_id" json:"public_id"`
	URL       string             `bson:"url" json:"url"`
	Size      int64              `bson:"size" json:"size"`
	Starred   bool               `bson:"starred" json:"starred"`
	CreatedAt time.Time          `bson:"date" json:"date"`
}
