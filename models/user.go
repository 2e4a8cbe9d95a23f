package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username" validate:"required,min=3,max=50"`
	Password  string             `bson:"password" json:"-" validate:"required,min=8"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// RootPath returns the canonical path of the user's root folder, which is
// the path-root ownership key for every asset the user owns.
func (u *User) RootPath() string {
	return u.ID.Hex()
}
