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

type sendMessageInput struct {
	GroupID string `json:"groupId"`
	Content string `json:"content"`
}

// HandleSendMessage posts a message into a group on behalf of the
// actor. Only current members may post.
func (h *Handler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var in sendMessageInput
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

	msg, err := h.Flow.Send(ctx, auth.ActorID(r), groupID, in.Content)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Created(w, msg, "Message sent successfully")
}
