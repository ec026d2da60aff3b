package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Admin represents an admin-panel account. Registration is gated by a shared
// secret key, so the collection is expected to stay small.
type Admin struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name"          json:"name"`
	Email        string        `bson:"email"         json:"email"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	Role         string        `bson:"role"          json:"role"`
	CreatedAt    time.Time     `bson:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at"    json:"updatedAt"`
}

// RoleAdmin is the only role admin accounts are created with.
const RoleAdmin = "admin"
