package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Share asset types.
const (
	ShareAssetFile   = "file"
	ShareAssetFolder = "folder"
)

// Share is a time-limited capability to view an asset. AssetName and
// AssetLocation are snapshots captured at creation; a share deliberately
// does not follow later renames. A nil Expires never expires.
type Share struct {
	ID            string             `bson:"_id" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	AssetID       primitive.ObjectID `bson:"asset_id" json:"asset_id"`
	AssetType     string             `bson:"asset_type" json:"asset_type"`
	AssetName     string             `bson:"asset_name" json:"asset_name"`
	AssetLocation string             `bson:"asset_location" json:"asset_location"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	Expires       *time.Time         `bson:"expires,omitempty" json:"expires,omitempty"`
}

// ShareDuration is the fixed set of lifetimes a share link can be issued
// with.
type ShareDuration string

const (
	ShareOneHour    ShareDuration = "1hr"
	ShareOneDay     ShareDuration = "1day"
	ShareOneWeek    ShareDuration = "1week"
	ShareThirtyDays ShareDuration = "30days"
	ShareNever      ShareDuration = "never"
)

// TTL returns the lifetime for the duration, with ok=false for an unknown
// value. The never duration returns ok=true and a zero TTL.
func (d ShareDuration) TTL() (time.Duration, bool) {
	switch d {
	case ShareOneHour:
		return time.Hour, true
	case ShareOneDay:
		return 24 * time.Hour, true
	case ShareOneWeek:
		return 7 * 24 * time.Hour, true
	case ShareThirtyDays:
		return 30 * 24 * time.Hour, true
	case ShareNever:
		return 0, true
	default:
		return 0, false
	}
}
