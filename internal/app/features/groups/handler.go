// Package groups exposes the group endpoints: public listing, creation,
// joining, the invitation workflow, analytics, rename, and delete.
package groups

import (
	"net/http"

	userstore "github.com/huddlehq/huddle/internal/app/store/users"
	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/app/workflow/groupflow"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature.
type Handler struct {
	Flow    *groupflow.Service
	Users   *userstore.Store
	Tokens  *auth.TokenManager
	BaseURL string
	Log     *zap.Logger
}

// NewHandler constructs a groups Handler. BaseURL is prepended to
// invitation paths so clients receive absolute links.
func NewHandler(db *mongo.Database, tokens *auth.TokenManager, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Flow:    groupflow.New(db),
		Users:   userstore.New(db),
		Tokens:  tokens,
		BaseURL: baseURL,
		Log:     logger,
	}
}

// pathID parses the named chi URL parameter as an ObjectID.
func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid("Bad " + name)
	}
	return id, nil
}
