package groups

import (
	"context"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
)

// HandleJoinGroup adds the actor to a public group.
func (h *Handler) HandleJoinGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Flow.JoinPublic(ctx, auth.ActorID(r), groupID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, nil, "Successfully joined the group")
}
