// Package messages exposes the messaging endpoints: posting into a
// group and listing a group's messages in order.
package messages

import (
	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/app/workflow/groupflow"
	"github.com/huddlehq/huddle/internal/app/workflow/messageflow"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the messages feature.
type Handler struct {
	Flow   *messageflow.Service
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

// NewHandler constructs a messages Handler.
func NewHandler(db *mongo.Database, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Flow:   messageflow.New(db, groupflow.New(db)),
		Tokens: tokens,
		Log:    logger,
	}
}
