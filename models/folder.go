package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Folder is a node in the materialized-path tree. Location holds the
// canonical path of the parent folder; the root folder has an empty
// location and is named after the owning user's id. Size is the cached sum
// of descendant file sizes, maintained by the synchronizer.
type Folder struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID              primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name                string             `bson:"name" json:"name" validate:"required"`
	Location            string             `bson:"location" json:"location"`
	Size                int64              `bson:"size" json:"size"`
	Starred             bool               `bson:"starred" json:"starred"`
	Pinned              bool               `bson:"pinned" json:"pinned"`
	OriginalNameAndPath string             `bson:"original_name_and_path,omitempty" json:"original_name_and_path,omitempty"`
	CreatedAt           time.Time          `bson:"date" json:"date"`
}
