package users

import (
	"context"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
)

// HandleLogout clears the stored refresh token so the outstanding
// refresh token can no longer be redeemed. Access tokens expire on
// their own.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	uid := auth.ActorID(r)
	if uid.IsZero() {
		httpjson.Error(w, h.Log, apperr.Unauthorized("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.SetRefreshToken(ctx, uid, ""); err != nil {
		httpjson.Error(w, h.Log, apperr.Internal(err))
		return
	}

	httpjson.OK(w, nil, "Logged out successfully")
}
