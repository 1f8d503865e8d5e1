// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group visibility types.
const (
	GroupPublic  = "public"
	GroupPrivate = "private"
)

// Invitation is a pending, single-use invite embedded on its group.
// The token is removed when consumed; expired invitations are rejected
// at acceptance time but not proactively purged.
type Invitation struct {
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Token     string             `bson:"token" json:"-"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expiresAt"`
}

// Group represents a chat group.
//
// Invariants:
//   - Admin is always present in Members.
//   - A user id appears at most once in Members.
//   - An invitation token is unique within Invitations.
type Group struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	NameCI      string               `bson:"name_ci" json:"-"`
	Type        string               `bson:"type" json:"type"` // public | private
	Admin       primitive.ObjectID   `bson:"admin" json:"admin"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	Invitations []Invitation         `bson:"invitations,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether id is in Members. ObjectIDs are fixed-size
// values, so this is the canonical identifier comparison.
func (g *Group) HasMember(id primitive.ObjectID) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}

// FindInvitation returns the invitation carrying token, if any.
func (g *Group) FindInvitation(token string) (Invitation, bool) {
	for _, inv := range g.Invitations {
		if inv.Token == token {
			return inv, true
		}
	}
	return Invitation{}, false
}
