// Package users exposes the account endpoints: registration, credential
// login, refresh-token rotation, the current-user view, and logout.
package users

import (
	userstore "github.com/huddlehq/huddle/internal/app/store/users"
	"github.com/huddlehq/huddle/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the users feature.
type Handler struct {
	Users  *userstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

// NewHandler constructs a users Handler. It is called from the
// bootstrap BuildHandler function once the DB and token manager exist.
func NewHandler(db *mongo.Database, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Tokens: tokens,
		Log:    logger,
	}
}
