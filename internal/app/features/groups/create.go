package groups

import (
	"context"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/normalize"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
	"github.com/huddlehq/huddle/internal/app/workflow/groupflow"
)

type createGroupInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// HandleCreateGroup creates a group with the actor as admin and sole
// member.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var in createGroupInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	group, err := h.Flow.Create(ctx, auth.ActorID(r), groupflow.CreateInput{
		Name: in.Name,
		Type: normalize.GroupType(in.Type),
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Created(w, group, "Group created successfully")
}
