// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a registered account.
//
// NOTE:
//   - PasswordHash and RefreshToken are never serialized to JSON; the
//     stores additionally project them away when resolving members for
//     analytics responses.
//   - Groups mirrors membership recorded on the group documents so a
//     user's groups can be listed without scanning the groups collection.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	NameCI       string               `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"password_hash,omitempty" json:"-"`
	Active       bool                 `bson:"active" json:"active"`
	Role         string               `bson:"role" json:"role"` // USER | ADMIN
	RefreshToken string               `bson:"refresh_token,omitempty" json:"-"`
	Groups       []primitive.ObjectID `bson:"groups,omitempty" json:"groups,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
