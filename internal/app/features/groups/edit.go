package groups

import (
	"context"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
)

type editGroupInput struct {
	Name string `json:"name"`
}

// HandleEditGroup renames a group and returns the updated document.
func (h *Handler) HandleEditGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var in editGroupInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	group, err := h.Flow.Edit(ctx, groupID, in.Name)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, group, "Group updated successfully")
}
