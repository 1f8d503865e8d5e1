package groups_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	groupsfeature "github.com/huddlehq/huddle/internal/app/features/groups"
	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/domain/models"
	"github.com/huddlehq/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, db *mongo.Database) *groupsfeature.Handler {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", 0, 0)
	return groupsfeature.NewHandler(db, tokens, "http://localhost:3000", zap.NewNop())
}

func TestHandleCreateGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")

	req := testutil.NewAuthenticatedJSONRequest("POST", "/groups",
		map[string]string{"name": "Chess Club", "type": "PUBLIC"}, user)
	rec := testutil.NewRecorder()
	h.HandleCreateGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	env := rec.Envelope(t)
	var group models.Group
	if err := json.Unmarshal(env.Data, &group); err != nil {
		t.Fatalf("failed to decode group: %v", err)
	}
	// The type is normalized on the way in.
	if group.Type != models.GroupPublic {
		t.Errorf("Type: got %q, want %q", group.Type, models.GroupPublic)
	}
	if group.Admin != user.ID {
		t.Errorf("Admin: got %v, want %v", group.Admin, user.ID)
	}
}

func TestHandleJoinGroup_BadID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")

	req := testutil.NewAuthenticatedRequest("POST", "/groups/not-hex/join", nil, user)
	req = testutil.WithChiURLParam(req, "groupID", "not-hex")
	rec := testutil.NewRecorder()
	h.HandleJoinGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleJoinGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")
	joiner := fixtures.CreateUser(ctx, "Bob", "bob@example.com", "secret")
	group := fixtures.CreateGroup(ctx, "Open", models.GroupPublic, admin.ID)

	req := testutil.NewAuthenticatedRequest("POST", "/groups/"+group.ID.Hex()+"/join", nil, joiner)
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleJoinGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	// Joining again conflicts, surfaced as a bad request.
	req = testutil.NewAuthenticatedRequest("POST", "/groups/"+group.ID.Hex()+"/join", nil, joiner)
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleJoinGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleInviteUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")
	invitee := fixtures.CreateUser(ctx, "Bob", "bob@example.com", "secret")
	group := fixtures.CreateGroup(ctx, "Private Club", models.GroupPrivate, admin.ID)

	req := testutil.NewAuthenticatedRequest("POST", "/groups/invite", nil, admin)
	req = testutil.WithChiURLParams(req, map[string]string{
		"groupID": group.ID.Hex(),
		"userID":  invitee.ID.Hex(),
	})
	rec := testutil.NewRecorder()
	h.HandleInviteUser(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	env := rec.Envelope(t)
	var link struct {
		InvitationLink string `json:"invitationLink"`
	}
	if err := json.Unmarshal(env.Data, &link); err != nil {
		t.Fatalf("failed to decode link: %v", err)
	}
	// The configured base URL turns the path into an absolute link.
	if !strings.HasPrefix(link.InvitationLink, "http://localhost:3000/groups/accept-invitation/") {
		t.Errorf("unexpected invitation link: %q", link.InvitationLink)
	}
}

func TestHandleAcceptInvitation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")
	invitee := fixtures.CreateUser(ctx, "Bob", "bob@example.com", "hunter22")
	group := fixtures.CreateGroup(ctx, "Private Club", models.GroupPrivate, admin.ID)

	link, err := h.Flow.Invite(ctx, admin.ID, group.ID, invitee.ID)
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	token := strings.TrimPrefix(link.InvitationLink, "/groups/accept-invitation/")

	// Wrong password: the credential gate rejects before the workflow runs.
	req := testutil.NewJSONRequest("POST", "/groups/accept-invitation/"+token,
		map[string]string{"email": invitee.Email, "password": "wrong"})
	req = testutil.WithChiURLParam(req, "token", token)
	rec := testutil.NewRecorder()
	h.HandleAcceptInvitation(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusUnauthorized)

	// Correct credentials redeem the invitation.
	req = testutil.NewJSONRequest("POST", "/groups/accept-invitation/"+token,
		map[string]string{"email": invitee.Email, "password": "hunter22"})
	req = testutil.WithChiURLParam(req, "token", token)
	rec = testutil.NewRecorder()
	h.HandleAcceptInvitation(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	detail, err := h.Flow.GroupAnalytics(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupAnalytics failed: %v", err)
	}
	if !detail.Group.HasMember(invitee.ID) {
		t.Error("expected invitee to be a member after accepting")
	}
}

func TestServeUserAnalytics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")
	member := fixtures.CreateUser(ctx, "Bob", "bob@example.com", "secret")
	fixtures.CreateGroup(ctx, "Duo", models.GroupPublic, admin.ID, member.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/groups/data", nil, admin)
	rec := testutil.NewRecorder()
	h.ServeUserAnalytics(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	env := rec.Envelope(t)
	var analytics struct {
		TotalGroupsCreated int64 `json:"totalGroupsCreated"`
		GroupUserCounts    []struct {
			Name    string `json:"name"`
			Members int    `json:"totalMembers"`
		} `json:"groupUserCounts"`
	}
	if err := json.Unmarshal(env.Data, &analytics); err != nil {
		t.Fatalf("failed to decode analytics: %v", err)
	}
	if analytics.TotalGroupsCreated != 1 {
		t.Errorf("TotalGroupsCreated: got %d, want 1", analytics.TotalGroupsCreated)
	}
	if len(analytics.GroupUserCounts) != 1 || analytics.GroupUserCounts[0].Members != 2 {
		t.Errorf("unexpected group counts: %+v", analytics.GroupUserCounts)
	}
}

func TestHandleEditGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")
	group := fixtures.CreateGroup(ctx, "Before", models.GroupPublic, admin.ID)

	req := testutil.NewAuthenticatedJSONRequest("PUT", "/groups/edit-group/"+group.ID.Hex(),
		map[string]string{"name": "After"}, admin)
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleEditGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	env := rec.Envelope(t)
	var updated models.Group
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("failed to decode group: %v", err)
	}
	if updated.Name != "After" {
		t.Errorf("Name: got %q, want %q", updated.Name, "After")
	}
}

func TestHandleDeleteGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Alice", "alice@example.com", "secret")
	member := fixtures.CreateUser(ctx, "Bob", "bob@example.com", "secret")
	group := fixtures.CreateGroup(ctx, "Doomed", models.GroupPublic, admin.ID, member.ID)

	// Non-admin deletion is forbidden.
	req := testutil.NewAuthenticatedRequest("DELETE", "/groups/"+group.ID.Hex(), nil, member)
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDeleteGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	req = testutil.NewAuthenticatedRequest("DELETE", "/groups/"+group.ID.Hex(), nil, admin)
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleDeleteGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	exists, err := h.Flow.Exists(ctx, group.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected group to be gone after delete")
	}
}
