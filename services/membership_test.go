package services_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"group-chat/domain"
	"group-chat/errors"
	"group-chat/mocks"
	"group-chat/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLeaveGroup_SoleAdminIsRefused(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	// Given a group whose only admin is alice
	group := f.group(t, "alice", false, "bob")

	// When alice tries to leave, or remove herself
	err := f.memberSvc.LeaveGroup(ctx, group.ID, "alice")
	req.ErrorIs(err, errors.ErrLastAdminViolation)
	err = f.memberSvc.RemoveMember(ctx, group.ID, "alice", "alice")
	req.ErrorIs(err, errors.ErrLastAdminViolation)

	// Then she is still the admin and nothing was published
	membership, err := f.members.GetMembership(ctx, group.ID, "alice")
	req.NoError(err)
	req.Equal(domain.RoleAdmin, membership.Role)
	req.Empty(f.published.Kinds())
}

func TestRemoveMember_OneOfTwoAdmins(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	// Given alice and bob both admins
	group := f.group(t, "alice", false)
	f.user(t, "bob")
	_, err := f.memberSvc.AddMember(ctx, group.ID, "alice", "bob", domain.RoleAdmin)
	req.NoError(err)

	// When alice removes bob
	err = f.memberSvc.RemoveMember(ctx, group.ID, "bob", "alice")

	// Then bob is gone and alice becomes the sole admin again
	req.NoError(err)
	_, err = f.gate.RequireMember(ctx, group.ID, "bob")
	req.ErrorIs(err, errors.ErrNotMember)
	req.ErrorIs(f.memberSvc.LeaveGroup(ctx, group.ID, "alice"), errors.ErrLastAdminViolation)
	req.Equal([]string{"member_added", "member_removed"}, f.published.Kinds())
}

func TestRemoveMember_Authorization(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	group := f.group(t, "alice", false, "bob", "carol")

	// A plain member cannot remove someone else
	req.ErrorIs(f.memberSvc.RemoveMember(ctx, group.ID, "carol", "bob"), errors.ErrNotAdmin)
	// An outsider cannot remove anyone
	f.user(t, "mallory")
	req.ErrorIs(f.memberSvc.RemoveMember(ctx, group.ID, "carol", "mallory"), errors.ErrNotMember)
	// Removing a non-member is reported as such
	req.ErrorIs(f.memberSvc.RemoveMember(ctx, group.ID, "mallory", "alice"), errors.ErrMemberNotFound)
	// A plain member can leave
	req.NoError(f.memberSvc.LeaveGroup(ctx, group.ID, "bob"))
	// An unknown group
	req.ErrorIs(f.memberSvc.LeaveGroup(ctx, "missing", "alice"), errors.ErrGroupNotFound)
}

func TestAddMember(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	group := f.group(t, "alice", false, "bob")
	f.user(t, "carol")

	// When alice adds carol without a role
	membership, err := f.memberSvc.AddMember(ctx, group.ID, "alice", "carol", "")

	// Then carol joins as a member at the current time
	req.NoError(err)
	req.Equal(domain.RoleMember, membership.Role)
	req.Equal(epoch, membership.JoinedAt)
	req.Equal([]string{"member_added"}, f.published.Kinds())

	// And adding her twice is refused
	_, err = f.memberSvc.AddMember(ctx, group.ID, "alice", "carol", domain.RoleMember)
	req.ErrorIs(err, errors.ErrAlreadyMember)

	// And only admins can add, only known users can be added
	_, err = f.memberSvc.AddMember(ctx, group.ID, "bob", "dave", domain.RoleMember)
	req.ErrorIs(err, errors.ErrNotAdmin)
	_, err = f.memberSvc.AddMember(ctx, group.ID, "alice", "dave", domain.RoleMember)
	req.ErrorIs(err, errors.ErrUserNotFound)
	_, err = f.memberSvc.AddMember(ctx, group.ID, "alice", "carol", "owner")
	req.ErrorIs(err, errors.ErrValidation)
}

func TestUpdateRole(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	group := f.group(t, "alice", false, "bob")

	// The sole admin cannot demote herself
	_, err := f.memberSvc.UpdateRole(ctx, group.ID, "alice", "alice", domain.RoleMember)
	req.ErrorIs(err, errors.ErrLastAdminViolation)

	// Setting the current role is a silent no-op
	membership, err := f.memberSvc.UpdateRole(ctx, group.ID, "alice", "bob", domain.RoleMember)
	req.NoError(err)
	req.Equal(domain.RoleMember, membership.Role)
	req.Empty(f.published.Kinds())

	// Once bob is promoted, alice can step down
	_, err = f.memberSvc.UpdateRole(ctx, group.ID, "alice", "bob", domain.RoleAdmin)
	req.NoError(err)
	membership, err = f.memberSvc.UpdateRole(ctx, group.ID, "alice", "alice", domain.RoleMember)
	req.NoError(err)
	req.Equal(domain.RoleMember, membership.Role)
	req.Equal([]string{"role_updated", "role_updated"}, f.published.Kinds())

	// And she has lost her admin rights
	_, err = f.memberSvc.UpdateRole(ctx, group.ID, "alice", "bob", domain.RoleMember)
	req.ErrorIs(err, errors.ErrNotAdmin)
}

func TestMuteMember_WithDuration(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	group := f.group(t, "alice", false, "bob")

	// Given bob muted for 60 minutes
	membership, err := f.memberSvc.MuteMember(ctx, group.ID, "alice", "bob", lo.ToPtr(60), "  spam  ")
	req.NoError(err)
	req.True(membership.IsMuted)
	req.Equal(epoch.Add(time.Hour), *membership.MuteUntil)

	// When he sends during the window
	_, err = f.messageSvc.Send(ctx, group.ID, "bob", sendRequest("hello"))
	req.ErrorIs(err, errors.ErrMuted)

	// Then once the window is over he can send again without being unmuted
	f.clock.Advance(61 * time.Minute)
	_, err = f.messageSvc.Send(ctx, group.ID, "bob", sendRequest("hello"))
	req.NoError(err)
}

func TestMuteMember_Indefinite(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	group := f.group(t, "alice", false, "bob")

	// Given bob muted without an end
	_, err := f.memberSvc.MuteMember(ctx, group.ID, "alice", "bob", nil, "")
	req.NoError(err)

	// Then he stays muted however long it takes
	f.clock.Advance(365 * 24 * time.Hour)
	_, err = f.messageSvc.Send(ctx, group.ID, "bob", sendRequest("hello"))
	req.ErrorIs(err, errors.ErrMuted)

	// Until an admin unmutes him
	membership, err := f.memberSvc.UnmuteMember(ctx, group.ID, "alice", "bob")
	req.NoError(err)
	req.False(membership.IsMuted)
	req.Nil(membership.MuteUntil)
	_, err = f.messageSvc.Send(ctx, group.ID, "bob", sendRequest("hello"))
	req.NoError(err)

	// Unmuting again changes nothing
	f.published.Reset()
	_, err = f.memberSvc.UnmuteMember(ctx, group.ID, "alice", "bob")
	req.NoError(err)
	req.Empty(f.published.Kinds())
}

func TestMuteMember_Validation(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	group := f.group(t, "alice", false, "bob")

	_, err := f.memberSvc.MuteMember(ctx, group.ID, "alice", "bob", lo.ToPtr(0), "")
	req.ErrorIs(err, errors.ErrValidation)
	_, err = f.memberSvc.MuteMember(ctx, group.ID, "alice", "bob", lo.ToPtr(10081), "")
	req.ErrorIs(err, errors.ErrValidation)
	_, err = f.memberSvc.MuteMember(ctx, group.ID, "bob", "alice", lo.ToPtr(5), "")
	req.ErrorIs(err, errors.ErrNotAdmin)
	_, err = f.memberSvc.MuteMember(ctx, group.ID, "alice", "carol", lo.ToPtr(5), "")
	req.ErrorIs(err, errors.ErrMemberNotFound)
}

func TestListMembers_AdminsFirst(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	group := f.group(t, "alice", false, "bob")
	f.clock.Advance(time.Minute)
	f.user(t, "carol")
	_, err := f.memberSvc.AddMember(ctx, group.ID, "alice", "carol", domain.RoleAdmin)
	req.NoError(err)

	members, err := f.memberSvc.ListMembers(ctx, group.ID, "bob")
	req.NoError(err)
	req.Equal([]string{"alice", "carol", "bob"}, lo.Map(members, func(m domain.Membership, _ int) string { return m.UserID }))

	_, err = f.memberSvc.ListMembers(ctx, group.ID, "mallory")
	req.ErrorIs(err, errors.ErrNotMember)
}

func TestLeaveGroup_ConcurrentAdminsKeepOne(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	for round := 0; round < 10; round++ {
		f := newFixture(t)
		// Given a group with exactly two admins
		group := f.group(t, "alice", false)
		f.user(t, "bob")
		_, err := f.memberSvc.AddMember(ctx, group.ID, "alice", "bob", domain.RoleAdmin)
		req.NoError(err)

		// When both leave at the same time
		var wg sync.WaitGroup
		results := make([]error, 2)
		for i, user := range []string{"alice", "bob"} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = f.memberSvc.LeaveGroup(ctx, group.ID, user)
			}()
		}
		wg.Wait()

		// Then exactly one of them succeeds and one admin remains
		succeeded := lo.CountBy(results, func(err error) bool { return err == nil })
		req.Equal(1, succeeded, "round %d: %v", round, results)
		for _, err := range results {
			if err != nil {
				req.ErrorIs(err, errors.ErrLastAdminViolation)
			}
		}
		members, err := f.members.ListMemberships(ctx, group.ID)
		req.NoError(err)
		req.Equal(1, members.Len())
		req.Equal(1, members.AdminCount())
	}
}

func TestMembershipService_StorageFailureIsRetryableAndSilent(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	// Given a store that keeps conflicting
	members := mocks.NewMockIMembershipRepository(ctrl)
	members.EXPECT().
		MutateMembers(gomock.Any(), "g1", gomock.Any()).
		Return(domain.MemberChange{}, errors.Storage(badger.ErrConflict))
	publisher := mocks.NewMockIPublisher(ctrl)
	gate := services.NewAuthorizationGate(mocks.NewMockIGroupRepository(ctrl), members, time.Now)
	svc := services.NewMembershipService(gate, members, mocks.NewMockIUserRepository(ctrl), publisher, nil, time.Now,
		logs.GetLoggerFromLevel(slog.LevelDebug))

	// When a member leaves
	err := svc.LeaveGroup(ctx, "g1", "alice")

	// Then the failure is surfaced as retryable and no event is published
	req.ErrorIs(err, errors.ErrStorage)
	req.True(errors.IsRetryable(err))
	req.ErrorIs(err, badger.ErrConflict)
}
