package messagestore_test

import (
	"testing"
	"time"

	messagestore "github.com/huddlehq/huddle/internal/app/store/messages"
	"github.com/huddlehq/huddle/internal/domain/models"
	"github.com/huddlehq/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	msg, err := store.Create(ctx, models.Message{
		GroupID:  primitive.NewObjectID(),
		SenderID: primitive.NewObjectID(),
		Content:  "hello",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if msg.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_ListByGroup_OrdersAscending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	sender := primitive.NewObjectID()
	base := time.Now().Add(-time.Hour)

	// Insert out of chronological order on purpose.
	fixtures.CreateMessage(ctx, groupID, sender, "second", base.Add(2*time.Minute))
	fixtures.CreateMessage(ctx, groupID, sender, "third", base.Add(3*time.Minute))
	fixtures.CreateMessage(ctx, groupID, sender, "first", base.Add(1*time.Minute))
	fixtures.CreateMessage(ctx, primitive.NewObjectID(), sender, "other group", base)

	msgs, err := store.ListByGroup(ctx, groupID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if msgs[i].Content != w {
			t.Errorf("position %d: got %q, want %q", i, msgs[i].Content, w)
		}
	}
}

func TestStore_DeleteByGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	otherGroup := primitive.NewObjectID()
	sender := primitive.NewObjectID()
	now := time.Now()

	fixtures.CreateMessage(ctx, groupID, sender, "a", now)
	fixtures.CreateMessage(ctx, groupID, sender, "b", now)
	fixtures.CreateMessage(ctx, otherGroup, sender, "keep", now)

	n, err := store.DeleteByGroup(ctx, groupID)
	if err != nil {
		t.Fatalf("DeleteByGroup failed: %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteByGroup: got %d deleted, want 2", n)
	}

	remaining, err := store.ListByGroup(ctx, otherGroup)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("other group: got %d messages, want 1", len(remaining))
	}
}
