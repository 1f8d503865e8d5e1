// Package messageflow implements the message workflow: membership-gated
// message creation and chronological retrieval. Membership and existence
// checks delegate to the group workflow.
package messageflow

import (
	"context"

	messagestore "github.com/huddlehq/huddle/internal/app/store/messages"
	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"github.com/huddlehq/huddle/internal/app/system/sanitize"
	"github.com/huddlehq/huddle/internal/app/workflow/groupflow"
	"github.com/huddlehq/huddle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Service struct {
	messages *messagestore.Store
	groups   *groupflow.Service
}

func New(db *mongo.Database, groups *groupflow.Service) *Service {
	return &Service{
		messages: messagestore.New(db),
		groups:   groups,
	}
}

// Send persists a message from the actor into the group. Only current
// members may post.
func (s *Service) Send(ctx context.Context, actorID, groupID primitive.ObjectID, content string) (models.Message, error) {
	if actorID.IsZero() {
		return models.Message{}, apperr.Unauthorized("Unauthorized")
	}

	isMember, err := s.groups.IsMember(ctx, groupID, actorID)
	if err != nil {
		return models.Message{}, err
	}
	if !isMember {
		return models.Message{}, apperr.Forbidden("User is not a member of this group")
	}

	content = sanitize.Text(content)
	if content == "" {
		return models.Message{}, apperr.Invalid("Content is required")
	}

	msg, err := s.messages.Create(ctx, models.Message{
		GroupID:  groupID,
		SenderID: actorID,
		Content:  content,
	})
	if err != nil {
		return models.Message{}, apperr.Internal(err)
	}
	return msg, nil
}

// List returns the group's messages ordered by creation time ascending.
func (s *Service) List(ctx context.Context, actorID, groupID primitive.ObjectID) ([]models.Message, error) {
	if actorID.IsZero() {
		return nil, apperr.Unauthorized("Unauthorized")
	}

	exists, err := s.groups.Exists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Group not found")
	}

	msgs, err := s.messages.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return msgs, nil
}
