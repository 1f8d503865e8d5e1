package messageflow_test

import (
	"testing"
	"time"

	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"github.com/huddlehq/huddle/internal/app/workflow/groupflow"
	"github.com/huddlehq/huddle/internal/app/workflow/messageflow"
	"github.com/huddlehq/huddle/internal/domain/models"
	"github.com/huddlehq/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newService(db *mongo.Database) (*messageflow.Service, *groupflow.Service) {
	groups := groupflow.New(db)
	return messageflow.New(db, groups), groups
}

func TestSend_MembershipGate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, groups := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")
	outsider := fixtures.CreateUser(ctx, "Bob", "bob@example.com", "secret")
	group := fixtures.CreateGroup(ctx, "Open", models.GroupPublic, admin.ID)

	// Non-members cannot post.
	_, err := svc.Send(ctx, outsider.ID, group.ID, "hi")
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("non-member send: got %v, want Forbidden", err)
	}

	// The identical call succeeds once the sender joins.
	if err := groups.JoinPublic(ctx, outsider.ID, group.ID); err != nil {
		t.Fatalf("JoinPublic failed: %v", err)
	}
	msg, err := svc.Send(ctx, outsider.ID, group.ID, "hi")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if msg.SenderID != outsider.ID {
		t.Errorf("SenderID: got %v, want %v", msg.SenderID, outsider.ID)
	}

	// And the new message lists last.
	msgs, err := svc.List(ctx, admin.ID, group.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(msgs) == 0 || msgs[len(msgs)-1].ID != msg.ID {
		t.Error("expected the new message to appear last")
	}
}

func TestSend_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")
	group := fixtures.CreateGroup(ctx, "Open", models.GroupPublic, admin.ID)

	_, err := svc.Send(ctx, primitive.NilObjectID, group.ID, "hi")
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("zero actor: got %v, want Unauthorized", err)
	}

	// Content that sanitizes to nothing is rejected.
	_, err = svc.Send(ctx, admin.ID, group.ID, "<img src=x>")
	if !apperr.IsKind(err, apperr.KindInvalid) {
		t.Errorf("empty content: got %v, want Invalid", err)
	}

	// Markup is stripped, the text survives.
	msg, err := svc.Send(ctx, admin.ID, group.ID, "hello <b>world</b>")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if msg.Content != "hello world" {
		t.Errorf("Content: got %q, want %q", msg.Content, "hello world")
	}

	// Posting into an unknown group.
	_, err = svc.Send(ctx, admin.ID, primitive.NewObjectID(), "hi")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing group: got %v, want NotFound", err)
	}
}

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")
	group := fixtures.CreateGroup(ctx, "Open", models.GroupPublic, admin.ID)
	base := time.Now().Add(-time.Hour)
	fixtures.CreateMessage(ctx, group.ID, admin.ID, "two", base.Add(2*time.Minute))
	fixtures.CreateMessage(ctx, group.ID, admin.ID, "one", base.Add(1*time.Minute))

	msgs, err := svc.List(ctx, admin.ID, group.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Content != "one" || msgs[1].Content != "two" {
		t.Errorf("unexpected order: %q then %q", msgs[0].Content, msgs[1].Content)
	}

	_, err = svc.List(ctx, primitive.NilObjectID, group.ID)
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("zero actor: got %v, want Unauthorized", err)
	}

	_, err = svc.List(ctx, admin.ID, primitive.NewObjectID())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing group: got %v, want NotFound", err)
	}
}
