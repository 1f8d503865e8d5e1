package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeMe returns the authenticated user's record. Credential fields
// never serialize to JSON.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	uid := auth.ActorID(r)
	if uid.IsZero() {
		httpjson.Error(w, h.Log, apperr.Unauthorized("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, h.Log, apperr.NotFound("User not found"))
			return
		}
		httpjson.Error(w, h.Log, apperr.Internal(err))
		return
	}

	httpjson.OK(w, user, "")
}
