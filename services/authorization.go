package services

import (
	"context"
	stderrors "errors"
	"time"

	"group-chat/contract"
	"group-chat/domain"
	"group-chat/errors"
	"group-chat/repositories"
)

// IAuthorizationGate answers whether a user may act on a group.
// Every method is a pure read: it never mutates state.
type IAuthorizationGate interface {
	RequireMember(ctx context.Context, groupID, userID string) (domain.Membership, error)
	RequireAdmin(ctx context.Context, groupID, userID string) (domain.Membership, error)
	CheckSendPermission(ctx context.Context, groupID, userID string) (domain.Membership, error)
}

type AuthorizationGate struct {
	groups  repositories.IGroupRepository
	members repositories.IMembershipRepository
	clock   contract.Clock
}

func NewAuthorizationGate(groups repositories.IGroupRepository, members repositories.IMembershipRepository, clock contract.Clock) *AuthorizationGate {
	return &AuthorizationGate{groups: groups, members: members, clock: clock}
}

func (g *AuthorizationGate) RequireMember(ctx context.Context, groupID, userID string) (domain.Membership, error) {
	membership, err := g.members.GetMembership(ctx, groupID, userID)
	if stderrors.Is(err, errors.ErrMemberNotFound) {
		return domain.Membership{}, errors.ErrNotMember
	}
	return membership, err
}

func (g *AuthorizationGate) RequireAdmin(ctx context.Context, groupID, userID string) (domain.Membership, error) {
	membership, err := g.RequireMember(ctx, groupID, userID)
	if err != nil {
		return domain.Membership{}, err
	}
	if !membership.IsAdmin() {
		return domain.Membership{}, errors.ErrNotAdmin
	}
	return membership, nil
}

// CheckSendPermission applies, in order: membership, admin-only mode, mute window.
func (g *AuthorizationGate) CheckSendPermission(ctx context.Context, groupID, userID string) (domain.Membership, error) {
	group, err := g.groups.GetGroup(ctx, groupID)
	if err != nil {
		return domain.Membership{}, err
	}
	membership, err := g.RequireMember(ctx, groupID, userID)
	if err != nil {
		return domain.Membership{}, err
	}
	if err = SendPermission(group, membership, g.clock()); err != nil {
		return domain.Membership{}, err
	}
	return membership, nil
}

// MemberOf is the membership rule evaluated over an already loaded set.
func MemberOf(members domain.MemberSet, userID string) (domain.Membership, error) {
	membership, ok := members.Get(userID)
	if !ok {
		return domain.Membership{}, errors.ErrNotMember
	}
	return membership, nil
}

// AdminOf is the admin rule evaluated over an already loaded set.
func AdminOf(members domain.MemberSet, userID string) (domain.Membership, error) {
	membership, err := MemberOf(members, userID)
	if err != nil {
		return domain.Membership{}, err
	}
	if !membership.IsAdmin() {
		return domain.Membership{}, errors.ErrNotAdmin
	}
	return membership, nil
}

// SendPermission checks the group mode and the member's mute window at now.
func SendPermission(group domain.Group, membership domain.Membership, now time.Time) error {
	if group.IsAdminOnly && !membership.IsAdmin() {
		return errors.ErrAdminOnlyRestricted
	}
	if membership.MuteActive(now) {
		return errors.ErrMuted
	}
	return nil
}
