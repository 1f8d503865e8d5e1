package groups

import (
	"context"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
)

// HandleDeleteGroup removes a group and cascades to member lists and
// messages. The cascade touches three collections, so it gets the
// medium timeout tier.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Flow.Delete(ctx, auth.ActorID(r), groupID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, nil, "Group deleted successfully")
}
