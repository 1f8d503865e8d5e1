package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
	"github.com/huddlehq/huddle/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResult pairs the fresh tokens with the authenticated user.
type loginResult struct {
	User auth.TokenPair `json:"user"`
	Info *models.User   `json:"info"`
}

// HandleLogin verifies credentials and issues a fresh token pair. The
// refresh token is persisted on the user record so it can be matched
// and rotated later.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
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

	pair, err := h.Tokens.IssuePair(user)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal(err))
		return
	}
	if err := h.Users.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal(err))
		return
	}

	httpjson.OK(w, loginResult{User: pair, Info: user}, "Logged in successfully")
}
