package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type refreshInput struct {
	RefreshToken string `json:"refreshToken"`
}

// HandleRefreshToken rotates a refresh token. The presented token must
// verify and match the one stored on the user record; both tokens of
// the pair are reissued.
func (h *Handler) HandleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var in refreshInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if in.RefreshToken == "" {
		httpjson.Error(w, h.Log, apperr.Invalid("refreshToken is required"))
		return
	}

	claims, err := h.Tokens.Verify(in.RefreshToken)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Unauthorized("Invalid or expired refresh token"))
		return
	}
	uid, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Unauthorized("Invalid or expired refresh token"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, h.Log, apperr.Unauthorized("Invalid or expired refresh token"))
			return
		}
		httpjson.Error(w, h.Log, apperr.Internal(err))
		return
	}

	// A stored token that differs from the presented one means the pair
	// was already rotated or revoked.
	if user.RefreshToken == "" || user.RefreshToken != in.RefreshToken {
		httpjson.Error(w, h.Log, apperr.Unauthorized("Invalid or expired refresh token"))
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

	httpjson.OK(w, pair, "Token refreshed successfully")
}
