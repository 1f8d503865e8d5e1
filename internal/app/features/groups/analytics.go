package groups

import (
	"context"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
)

// ServeUserAnalytics reports how many groups the actor administers and
// the member count of each.
func (h *Handler) ServeUserAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	analytics, err := h.Flow.UserAnalytics(ctx, auth.ActorID(r))
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, analytics, "")
}

// ServeGroupData returns a group with its admin and members resolved to
// user records.
func (h *Handler) ServeGroupData(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	detail, err := h.Flow.GroupAnalytics(ctx, groupID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, detail, "")
}
