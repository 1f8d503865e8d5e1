package messages

import (
	"context"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type getMessagesInput struct {
	GroupID string `json:"groupId"`
}

// HandleGetAllMessages returns a group's messages ordered by creation
// time ascending.
func (h *Handler) HandleGetAllMessages(w http.ResponseWriter, r *http.Request) {
	var in getMessagesInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	groupID, err := primitive.ObjectIDFromHex(in.GroupID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Invalid("Bad groupId"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	msgs, err := h.Flow.List(ctx, auth.ActorID(r), groupID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, msgs, "")
}
