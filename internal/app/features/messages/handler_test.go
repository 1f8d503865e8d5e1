package messages_test

import (
	"encoding/json"
	"net/http"
	"testing"

	messagesfeature "github.com/huddlehq/huddle/internal/app/features/messages"
	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/domain/models"
	"github.com/huddlehq/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, db *mongo.Database) *messagesfeature.Handler {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", 0, 0)
	return messagesfeature.NewHandler(db, tokens, zap.NewNop())
}

func TestHandleSendMessage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")
	outsider := fixtures.CreateUser(ctx, "Bob", "bob@example.com", "secret")
	group := fixtures.CreateGroup(ctx, "Open", models.GroupPublic, admin.ID)

	// Non-members cannot post.
	req := testutil.NewAuthenticatedJSONRequest("POST", "/messages/send-message",
		map[string]string{"groupId": group.ID.Hex(), "content": "hi"}, outsider)
	rec := testutil.NewRecorder()
	h.HandleSendMessage(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	// A member's message is stored and returned.
	req = testutil.NewAuthenticatedJSONRequest("POST", "/messages/send-message",
		map[string]string{"groupId": group.ID.Hex(), "content": "hello there"}, admin)
	rec = testutil.NewRecorder()
	h.HandleSendMessage(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	env := rec.Envelope(t)
	var msg models.Message
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		t.Fatalf("failed to decode message: %v", err)
	}
	if msg.Content != "hello there" {
		t.Errorf("Content: got %q, want %q", msg.Content, "hello there")
	}
	if msg.SenderID != admin.ID {
		t.Errorf("SenderID: got %v, want %v", msg.SenderID, admin.ID)
	}
}

func TestHandleSendMessage_BadGroupID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")

	req := testutil.NewAuthenticatedJSONRequest("POST", "/messages/send-message",
		map[string]string{"groupId": "not-hex", "content": "hi"}, user)
	rec := testutil.NewRecorder()
	h.HandleSendMessage(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleGetAllMessages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")
	group := fixtures.CreateGroup(ctx, "Open", models.GroupPublic, admin.ID)

	// Seed two messages through the workflow so ordering applies.
	if _, err := h.Flow.Send(ctx, admin.ID, group.ID, "first"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if _, err := h.Flow.Send(ctx, admin.ID, group.ID, "second"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	req := testutil.NewAuthenticatedJSONRequest("POST", "/messages/get-all-messages",
		map[string]string{"groupId": group.ID.Hex()}, admin)
	rec := testutil.NewRecorder()
	h.HandleGetAllMessages(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	env := rec.Envelope(t)
	var msgs []models.Message
	if err := json.Unmarshal(env.Data, &msgs); err != nil {
		t.Fatalf("failed to decode messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Content != "first" || msgs[1].Content != "second" {
		t.Errorf("unexpected order: %q then %q", msgs[0].Content, msgs[1].Content)
	}

	// Unknown groups are a 404.
	req = testutil.NewAuthenticatedJSONRequest("POST", "/messages/get-all-messages",
		map[string]string{"groupId": primitive.NewObjectID().Hex()}, admin)
	rec = testutil.NewRecorder()
	h.HandleGetAllMessages(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)
}
