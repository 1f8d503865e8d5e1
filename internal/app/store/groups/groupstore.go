// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"time"

	"github.com/huddlehq/huddle/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

var errBadType = errors.New(`type must be "public" or "private"`)

// GetByID loads a group by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Create inserts a new group. The caller sets Admin and Members; the
// admin-in-members invariant is the workflow's responsibility.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	switch g.Type {
	case models.GroupPublic, models.GroupPrivate:
		// ok
	default:
		return models.Group{}, errBadType
	}

	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = text.Fold(g.Name)
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// ListPublic returns every group with type "public".
func (s *Store) ListPublic(ctx context.Context) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{"type": models.GroupPublic})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// AddMember appends userID to the members set. $addToSet guarantees the
// at-most-once membership invariant at the document level even if two
// requests race past the workflow's check.
func (s *Store) AddMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// AddInvitation pushes a pending invitation onto the group.
func (s *Store) AddInvitation(ctx context.Context, groupID primitive.ObjectID, inv models.Invitation) error {
	_, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$push": bson.M{"invitations": inv},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// GetByInviteToken finds the group holding the given invitation token.
// Returns mongo.ErrNoDocuments when no group carries it (unknown or
// already-consumed token).
func (s *Store) GetByInviteToken(ctx context.Context, token string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"invitations.token": token}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// ConsumeInvitation adds userID to members and removes exactly the
// invitation carrying token in one update; other pending invitations
// survive.
func (s *Store) ConsumeInvitation(ctx context.Context, groupID primitive.ObjectID, token string, userID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$addToSet": bson.M{"members": userID},
		"$pull":     bson.M{"invitations": bson.M{"token": token}},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// UpdateName renames a group and returns the updated document.
// Returns mongo.ErrNoDocuments if the group does not exist.
func (s *Store) UpdateName(ctx context.Context, id primitive.ObjectID, name string) (models.Group, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var g models.Group
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":       name,
			"name_ci":    text.Fold(name),
			"updated_at": time.Now().UTC(),
		}},
		opts,
	).Decode(&g)
	if err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Delete removes a group by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByAdmin returns how many groups the given user administers.
func (s *Store) CountByAdmin(ctx context.Context, adminID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"admin": adminID})
}

// ListByAdmin returns the groups the given user administers.
func (s *Store) ListByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{"admin": adminID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
