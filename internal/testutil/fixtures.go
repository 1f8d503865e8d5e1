package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/huddlehq/huddle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user. The password is hashed at the lowest
// bcrypt cost to keep tests fast.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateGroup creates a test group administered by admin. The admin is
// always included in members; extra member ids may be passed. The
// membership is mirrored onto each member's user document the way the
// workflows maintain it.
func (f *Fixtures) CreateGroup(ctx context.Context, name, typ string, admin primitive.ObjectID, members ...primitive.ObjectID) models.Group {
	f.t.Helper()

	all := append([]primitive.ObjectID{admin}, members...)

	now := time.Now().UTC()
	group := models.Group{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Type:      typ,
		Admin:     admin,
		Members:   all,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}

	_, err := f.db.Collection("users").UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": all}},
		bson.M{"$addToSet": bson.M{"groups": group.ID}},
	)
	if err != nil {
		f.t.Fatalf("failed to mirror test memberships: %v", err)
	}
	return group
}

// CreateInvitation pushes a pending invitation onto the group and
// returns it.
func (f *Fixtures) CreateInvitation(ctx context.Context, groupID, userID primitive.ObjectID, token string, expiresAt time.Time) models.Invitation {
	f.t.Helper()

	inv := models.Invitation{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	_, err := f.db.Collection("groups").UpdateByID(ctx, groupID, bson.M{
		"$push": bson.M{"invitations": inv},
	})
	if err != nil {
		f.t.Fatalf("failed to create test invitation: %v", err)
	}
	return inv
}

// CreateMessage inserts a test message with the given creation time so
// ordering scenarios can be constructed precisely.
func (f *Fixtures) CreateMessage(ctx context.Context, groupID, senderID primitive.ObjectID, content string, createdAt time.Time) models.Message {
	f.t.Helper()

	msg := models.Message{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: createdAt.UTC(),
	}
	if _, err := f.db.Collection("messages").InsertOne(ctx, msg); err != nil {
		f.t.Fatalf("failed to create test message: %v", err)
	}
	return msg
}
