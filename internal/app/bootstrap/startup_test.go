package bootstrap

import (
	"testing"

	"github.com/huddlehq/huddle/internal/testutil"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureSchema_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{HuddleMongoDatabase: db}

	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	// The unique email index must exist on users.
	cur, err := db.Collection("users").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("failed to list users indexes: %v", err)
	}
	defer cur.Close(ctx)

	found := false
	for cur.Next(ctx) {
		var idx struct {
			Name   string `bson:"name"`
			Unique bool   `bson:"unique"`
		}
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("failed to decode index: %v", err)
		}
		if idx.Name == "uniq_users_email" {
			found = true
			if !idx.Unique {
				t.Error("expected uniq_users_email to be unique")
			}
		}
	}
	if !found {
		t.Error("expected uniq_users_email index on users")
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{HuddleMongoDatabase: db}

	for i := 0; i < 2; i++ {
		if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
			t.Fatalf("EnsureSchema run %d failed: %v", i+1, err)
		}
	}
}
