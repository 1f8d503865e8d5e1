package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type acceptInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAcceptInvitation consumes an invitation token. The route is
// credential-authenticated rather than bearer-authenticated: the
// invited user proves their identity with email and password, so a
// link can be redeemed without an active session.
func (h *Handler) HandleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		httpjson.Error(w, h.Log, apperr.Invalid("Invitation token is required"))
		return
	}

	var in acceptInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if in.Email == "" || in.Password == "" {
		httpjson.Error(w, h.Log, apperr.Invalid("Email and password are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, h.Log, apperr.Unauthorized("Invalid email or password"))
			return
		}
		httpjson.Error(w, h.Log, apperr.Internal(err))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		httpjson.Error(w, h.Log, apperr.Unauthorized("Invalid email or password"))
		return
	}

	if err := h.Flow.Accept(ctx, token, user.Email); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, nil, "Invitation accepted successfully")
}
