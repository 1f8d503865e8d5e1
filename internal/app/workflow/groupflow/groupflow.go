// Package groupflow implements the group workflow: creation, public
// join, invitation issuance and acceptance, analytics, rename, and the
// cascading delete. Every operation takes an explicit actor id; a zero
// ObjectID means "no authenticated actor".
package groupflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	groupstore "github.com/huddlehq/huddle/internal/app/store/groups"
	messagestore "github.com/huddlehq/huddle/internal/app/store/messages"
	userstore "github.com/huddlehq/huddle/internal/app/store/users"
	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"github.com/huddlehq/huddle/internal/app/system/invitetoken"
	"github.com/huddlehq/huddle/internal/app/system/sanitize"
	"github.com/huddlehq/huddle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Clock returns the current time; swapped in tests to exercise expiry.
var Clock = time.Now

type Service struct {
	groups   *groupstore.Store
	users    *userstore.Store
	messages *messagestore.Store
}

func New(db *mongo.Database) *Service {
	return &Service{
		groups:   groupstore.New(db),
		users:    userstore.New(db),
		messages: messagestore.New(db),
	}
}

// ListPublic returns all public groups.
func (s *Service) ListPublic(ctx context.Context) ([]models.Group, error) {
	groups, err := s.groups.ListPublic(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return groups, nil
}

// CreateInput is the validated body for Create.
type CreateInput struct {
	Name string
	Type string
}

// Create makes a new group with the actor as admin and sole member, and
// records the membership on the actor's user document.
func (s *Service) Create(ctx context.Context, actorID primitive.ObjectID, in CreateInput) (models.Group, error) {
	if actorID.IsZero() {
		return models.Group{}, apperr.Unauthorized("Unauthorized")
	}

	name := sanitize.Text(in.Name)
	if name == "" {
		return models.Group{}, apperr.Invalid("Group name is required")
	}
	if in.Type != models.GroupPublic && in.Type != models.GroupPrivate {
		return models.Group{}, apperr.Invalid(`Group type must be "public" or "private"`)
	}

	group, err := s.groups.Create(ctx, models.Group{
		Name:    name,
		Type:    in.Type,
		Admin:   actorID,
		Members: []primitive.ObjectID{actorID},
	})
	if err != nil {
		return models.Group{}, apperr.Internal(err)
	}

	if err := s.users.AddGroup(ctx, actorID, group.ID); err != nil {
		return models.Group{}, apperr.Internal(err)
	}
	return group, nil
}

// JoinPublic adds the actor to a public group.
func (s *Service) JoinPublic(ctx context.Context, actorID, groupID primitive.ObjectID) error {
	if actorID.IsZero() {
		return apperr.Unauthorized("Unauthorized")
	}

	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("Group not found")
		}
		return apperr.Internal(err)
	}

	if group.Type != models.GroupPublic {
		return apperr.Invalid("Cannot join a private group directly")
	}
	if group.HasMember(actorID) {
		return apperr.Conflict("Already a member")
	}

	if err := s.groups.AddMember(ctx, groupID, actorID); err != nil {
		return apperr.Internal(err)
	}
	if err := s.users.AddGroup(ctx, actorID, groupID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// InvitationLink is returned by Invite. The path embeds the opaque
// token; the caller turns it into an absolute URL.
type InvitationLink struct {
	InvitationLink string `json:"invitationLink"`
}

// Invite issues a single-use invitation for targetID, valid for 24
// hours. Only the group admin may invite.
func (s *Service) Invite(ctx context.Context, actorID, groupID, targetID primitive.ObjectID) (InvitationLink, error) {
	if actorID.IsZero() {
		return InvitationLink{}, apperr.Unauthorized("Unauthorized")
	}

	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return InvitationLink{}, apperr.NotFound("Group not found")
		}
		return InvitationLink{}, apperr.Internal(err)
	}

	if group.Admin != actorID {
		return InvitationLink{}, apperr.Forbidden("Only the admin can invite users")
	}
	if group.HasMember(targetID) {
		return InvitationLink{}, apperr.Conflict("Already a member")
	}

	now := Clock()
	inv := models.Invitation{
		UserID:    targetID,
		Token:     invitetoken.New(),
		ExpiresAt: invitetoken.ExpiryFrom(now),
	}
	if err := s.groups.AddInvitation(ctx, groupID, inv); err != nil {
		return InvitationLink{}, apperr.Internal(err)
	}

	return InvitationLink{
		InvitationLink: fmt.Sprintf("/groups/accept-invitation/%s", inv.Token),
	}, nil
}

// Accept consumes an invitation token on behalf of the user identified
// by email. The invitation is bound to one recipient and removed once
// consumed; other pending invitations on the group survive.
func (s *Service) Accept(ctx context.Context, token, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.Unauthorized("Unauthorized")
		}
		return apperr.Internal(err)
	}

	group, err := s.groups.GetByInviteToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("Invalid or expired invitation")
		}
		return apperr.Internal(err)
	}

	inv, ok := group.FindInvitation(token)
	if !ok || Clock().After(inv.ExpiresAt) {
		return apperr.Expired("Invitation expired")
	}
	if inv.UserID != user.ID {
		return apperr.Forbidden("You are not authorized to use this invitation")
	}
	if group.HasMember(user.ID) {
		return apperr.Conflict("You are already a member of this group")
	}

	if err := s.groups.ConsumeInvitation(ctx, group.ID, token, user.ID); err != nil {
		return apperr.Internal(err)
	}
	if err := s.users.AddGroup(ctx, user.ID, group.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// GroupCount summarizes one administered group for UserAnalytics.
type GroupCount struct {
	GroupID primitive.ObjectID `json:"groupId"`
	Name    string             `json:"name"`
	Members int                `json:"totalMembers"`
}

// Analytics is the per-admin summary returned by UserAnalytics.
type Analytics struct {
	TotalGroupsCreated int64        `json:"totalGroupsCreated"`
	GroupUserCounts    []GroupCount `json:"groupUserCounts"`
}

// UserAnalytics reports how many groups the actor administers and the
// member count of each.
func (s *Service) UserAnalytics(ctx context.Context, actorID primitive.ObjectID) (Analytics, error) {
	if actorID.IsZero() {
		return Analytics{}, apperr.Unauthorized("Unauthorized")
	}

	total, err := s.groups.CountByAdmin(ctx, actorID)
	if err != nil {
		return Analytics{}, apperr.Internal(err)
	}
	groups, err := s.groups.ListByAdmin(ctx, actorID)
	if err != nil {
		return Analytics{}, apperr.Internal(err)
	}

	counts := make([]GroupCount, 0, len(groups))
	for _, g := range groups {
		counts = append(counts, GroupCount{
			GroupID: g.ID,
			Name:    g.Name,
			Members: len(g.Members),
		})
	}
	return Analytics{TotalGroupsCreated: total, GroupUserCounts: counts}, nil
}

// GroupDetail is a group with admin and members resolved to user
// records (credential fields excluded by the store projection).
type GroupDetail struct {
	Group   models.Group  `json:"group"`
	Admin   *models.User  `json:"admin"`
	Members []models.User `json:"members"`
}

// GroupAnalytics resolves a group's admin and members to user records.
func (s *Service) GroupAnalytics(ctx context.Context, groupID primitive.ObjectID) (GroupDetail, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return GroupDetail{}, apperr.Invalid("group not found")
		}
		return GroupDetail{}, apperr.Internal(err)
	}

	members, err := s.users.ListByIDs(ctx, group.Members)
	if err != nil {
		return GroupDetail{}, apperr.Internal(err)
	}

	detail := GroupDetail{Group: group, Members: members}
	for i := range members {
		if members[i].ID == group.Admin {
			detail.Admin = &members[i]
			break
		}
	}
	// Admin may have been removed from members by direct data surgery;
	// resolve separately rather than returning a nil admin silently.
	if detail.Admin == nil {
		admins, err := s.users.ListByIDs(ctx, []primitive.ObjectID{group.Admin})
		if err != nil {
			return GroupDetail{}, apperr.Internal(err)
		}
		if len(admins) > 0 {
			detail.Admin = &admins[0]
		}
	}
	return detail, nil
}

// Edit renames a group. The route is bearer-authenticated but the
// rename is deliberately not admin-gated; any authenticated user may
// rename any group.
func (s *Service) Edit(ctx context.Context, groupID primitive.ObjectID, name string) (models.Group, error) {
	name = sanitize.Text(name)
	if name == "" {
		return models.Group{}, apperr.Invalid("Group name is required")
	}

	group, err := s.groups.UpdateName(ctx, groupID, name)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, apperr.NotFound("Group not found")
		}
		return models.Group{}, apperr.Internal(err)
	}
	return group, nil
}

// Delete removes a group and cascades: the group id is pulled from every
// member's membership list and all messages in the group are deleted
// before the group document itself. The sequence is not atomic; a crash
// mid-cascade leaves partial cleanup (inherited behavior).
func (s *Service) Delete(ctx context.Context, actorID, groupID primitive.ObjectID) error {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.Invalid("Group not found")
		}
		return apperr.Internal(err)
	}

	if group.Admin != actorID {
		return apperr.Forbidden("Only the admin can delete the group")
	}

	// Member cleanup and message deletion both depend on the group
	// document, so they run before the group record disappears.
	if err := s.users.RemoveGroupFromMembers(ctx, group.Members, group.ID); err != nil {
		return apperr.Internal(err)
	}
	if _, err := s.messages.DeleteByGroup(ctx, group.ID); err != nil {
		return apperr.Internal(err)
	}
	if _, err := s.groups.Delete(ctx, group.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// IsMember reports whether userID is a member of groupID. A missing
// group is an error, not a false.
func (s *Service) IsMember(ctx context.Context, groupID, userID primitive.ObjectID) (bool, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, apperr.NotFound("Group not found")
		}
		return false, apperr.Internal(err)
	}
	return group.HasMember(userID), nil
}

// Exists reports whether the group exists; unlike IsMember a missing
// group is a plain false.
func (s *Service) Exists(ctx context.Context, groupID primitive.ObjectID) (bool, error) {
	_, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, apperr.Internal(err)
	}
	return true, nil
}
