package groups

import (
	"context"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
	"github.com/huddlehq/huddle/internal/app/workflow/groupflow"
)

// HandleInviteUser issues an invitation for the target user. Only the
// group admin may invite; the response carries the acceptance link.
func (h *Handler) HandleInviteUser(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	targetID, err := pathID(r, "userID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	link, err := h.Flow.Invite(ctx, auth.ActorID(r), groupID, targetID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if h.BaseURL != "" {
		link = groupflow.InvitationLink{InvitationLink: h.BaseURL + link.InvitationLink}
	}
	httpjson.OK(w, link, "Invitation created successfully")
}
