//go:generate go run go.uber.org/mock/mockgen -source=membership.go -destination=../mocks/mock_membership_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"group-chat/contract"
	"group-chat/domain"
	"group-chat/domain/event"
	"group-chat/errors"
	"group-chat/observability"
	"group-chat/repositories"
	"group-chat/validation"
)

// IMembershipService guards every membership mutation with the last-admin
// invariant: a group that has members always keeps at least one admin.
type IMembershipService interface {
	AddMember(ctx context.Context, groupID, actingID, targetID string, role domain.Role) (domain.Membership, error)
	RemoveMember(ctx context.Context, groupID, targetID, actingID string) error
	UpdateRole(ctx context.Context, groupID, actingID, targetID string, role domain.Role) (domain.Membership, error)
	LeaveGroup(ctx context.Context, groupID, userID string) error
	MuteMember(ctx context.Context, groupID, actingID, targetID string, minutes *int, reason string) (domain.Membership, error)
	UnmuteMember(ctx context.Context, groupID, actingID, targetID string) (domain.Membership, error)
	ListMembers(ctx context.Context, groupID, actingID string) ([]domain.Membership, error)
}

type MembershipService struct {
	gate      IAuthorizationGate
	members   repositories.IMembershipRepository
	users     repositories.IUserRepository
	publisher contract.IPublisher
	metrics   *observability.Metrics
	clock     contract.Clock
	log       *slog.Logger
}

func NewMembershipService(
	gate IAuthorizationGate,
	members repositories.IMembershipRepository,
	users repositories.IUserRepository,
	publisher contract.IPublisher,
	metrics *observability.Metrics,
	clock contract.Clock,
	log *slog.Logger,
) *MembershipService {
	return &MembershipService{
		gate:      gate,
		members:   members,
		users:     users,
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
		log:       log,
	}
}

// AddMember fails fast on a non-admin actor or an unknown target, then
// re-checks the actor and the duplicate rule inside the atomic unit.
func (s *MembershipService) AddMember(ctx context.Context, groupID, actingID, targetID string, role domain.Role) (_ domain.Membership, err error) {
	defer func(start time.Time) { s.metrics.ObserveDecision("add_member", start, err) }(time.Now())

	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return domain.Membership{}, validation.Invalid("role", "must be one of: admin member")
	}
	if _, err = s.gate.RequireAdmin(ctx, groupID, actingID); err != nil {
		return domain.Membership{}, err
	}
	found, err := s.users.Exists(ctx, targetID)
	if err != nil {
		return domain.Membership{}, err
	}
	if !found {
		return domain.Membership{}, errors.ErrUserNotFound
	}

	now := s.clock()
	change, err := s.members.MutateMembers(ctx, groupID, func(_ domain.Group, members domain.MemberSet) (domain.MemberChange, error) {
		if _, err := AdminOf(members, actingID); err != nil {
			return domain.MemberChange{}, err
		}
		if _, ok := members.Get(targetID); ok {
			return domain.MemberChange{}, errors.ErrAlreadyMember
		}
		return domain.PutMember(domain.Membership{
			GroupID:  groupID,
			UserID:   targetID,
			Role:     role,
			JoinedAt: now,
		}), nil
	})
	if err != nil {
		return domain.Membership{}, err
	}

	s.log.Info("Member added", "group", groupID, "user", targetID, "role", role, "by", actingID)
	s.publisher.Publish(event.MemberAdded{Member: change.Member, AddedBy: actingID})
	return change.Member, nil
}

// RemoveMember deletes the target's membership. Removing someone else needs
// admin rights; removing oneself only needs membership. Either way the group
// must survive losing the target as an admin.
func (s *MembershipService) RemoveMember(ctx context.Context, groupID, targetID, actingID string) (err error) {
	action := "remove_member"
	if targetID == actingID {
		action = "leave_group"
	}
	defer func(start time.Time) { s.metrics.ObserveDecision(action, start, err) }(time.Now())

	_, err = s.members.MutateMembers(ctx, groupID, func(_ domain.Group, members domain.MemberSet) (domain.MemberChange, error) {
		if targetID == actingID {
			if _, err := MemberOf(members, actingID); err != nil {
				return domain.MemberChange{}, err
			}
		} else if _, err := AdminOf(members, actingID); err != nil {
			return domain.MemberChange{}, err
		}
		target, ok := members.Get(targetID)
		if !ok {
			return domain.MemberChange{}, errors.ErrMemberNotFound
		}
		if !members.CanLoseAdmin(targetID) {
			return domain.MemberChange{}, errors.ErrLastAdminViolation
		}
		return domain.DeleteMember(target), nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Member removed", "group", groupID, "user", targetID, "by", actingID)
	s.publisher.Publish(event.MemberRemoved{Group: groupID, UserID: targetID, RemovedBy: actingID})
	return nil
}

func (s *MembershipService) LeaveGroup(ctx context.Context, groupID, userID string) error {
	return s.RemoveMember(ctx, groupID, userID, userID)
}

// UpdateRole sets the target's role. Setting the role it already has is a
// successful no-op; demoting the sole admin is refused.
func (s *MembershipService) UpdateRole(ctx context.Context, groupID, actingID, targetID string, role domain.Role) (_ domain.Membership, err error) {
	defer func(start time.Time) { s.metrics.ObserveDecision("update_role", start, err) }(time.Now())

	if !role.Valid() {
		return domain.Membership{}, validation.Invalid("role", "must be one of: admin member")
	}
	change, err := s.members.MutateMembers(ctx, groupID, func(_ domain.Group, members domain.MemberSet) (domain.MemberChange, error) {
		if _, err := AdminOf(members, actingID); err != nil {
			return domain.MemberChange{}, err
		}
		target, ok := members.Get(targetID)
		if !ok {
			return domain.MemberChange{}, errors.ErrMemberNotFound
		}
		if target.Role == role {
			return domain.NoChange(target), nil
		}
		if role == domain.RoleMember && !members.CanLoseAdmin(targetID) {
			return domain.MemberChange{}, errors.ErrLastAdminViolation
		}
		target.Role = role
		return domain.PutMember(target), nil
	})
	if err != nil {
		return domain.Membership{}, err
	}

	if change.Kind == domain.ChangePut {
		s.log.Info("Role updated", "group", groupID, "user", targetID, "role", role, "by", actingID)
		s.publisher.Publish(event.RoleUpdated{Member: change.Member, UpdatedBy: actingID})
	}
	return change.Member, nil
}

// MuteMember blocks the target from sending. With minutes the mute ends at
// now+minutes; without, it lasts until UnmuteMember.
func (s *MembershipService) MuteMember(ctx context.Context, groupID, actingID, targetID string, minutes *int, reason string) (_ domain.Membership, err error) {
	defer func(start time.Time) { s.metrics.ObserveDecision("mute_member", start, err) }(time.Now())

	request := validation.MuteRequest{Minutes: minutes, Reason: reason}
	if err = validation.Validate(&request); err != nil {
		return domain.Membership{}, err
	}
	now := s.clock()
	var until *time.Time
	if minutes != nil {
		at := now.Add(time.Duration(*minutes) * time.Minute)
		until = &at
	}

	change, err := s.members.MutateMembers(ctx, groupID, func(_ domain.Group, members domain.MemberSet) (domain.MemberChange, error) {
		if _, err := AdminOf(members, actingID); err != nil {
			return domain.MemberChange{}, err
		}
		target, ok := members.Get(targetID)
		if !ok {
			return domain.MemberChange{}, errors.ErrMemberNotFound
		}
		target.IsMuted = true
		target.MuteUntil = until
		return domain.PutMember(target), nil
	})
	if err != nil {
		return domain.Membership{}, err
	}

	s.log.Info("Member muted", "group", groupID, "user", targetID, "until", until, "by", actingID, "reason", request.Reason)
	s.publisher.Publish(event.MemberMuted{Member: change.Member, MutedBy: actingID, Reason: request.Reason})
	return change.Member, nil
}

func (s *MembershipService) UnmuteMember(ctx context.Context, groupID, actingID, targetID string) (_ domain.Membership, err error) {
	defer func(start time.Time) { s.metrics.ObserveDecision("unmute_member", start, err) }(time.Now())

	change, err := s.members.MutateMembers(ctx, groupID, func(_ domain.Group, members domain.MemberSet) (domain.MemberChange, error) {
		if _, err := AdminOf(members, actingID); err != nil {
			return domain.MemberChange{}, err
		}
		target, ok := members.Get(targetID)
		if !ok {
			return domain.MemberChange{}, errors.ErrMemberNotFound
		}
		if !target.IsMuted && target.MuteUntil == nil {
			return domain.NoChange(target), nil
		}
		target.IsMuted = false
		target.MuteUntil = nil
		return domain.PutMember(target), nil
	})
	if err != nil {
		return domain.Membership{}, err
	}

	if change.Kind == domain.ChangePut {
		s.log.Info("Member unmuted", "group", groupID, "user", targetID, "by", actingID)
		s.publisher.Publish(event.MemberUnmuted{Member: change.Member, UnmutedBy: actingID})
	}
	return change.Member, nil
}

// ListMembers returns admins first, then members, each by join date.
func (s *MembershipService) ListMembers(ctx context.Context, groupID, actingID string) ([]domain.Membership, error) {
	members, err := s.members.ListMemberships(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing members of %s: %w", groupID, err)
	}
	if _, err = MemberOf(members, actingID); err != nil {
		return nil, err
	}
	return members.Sorted(), nil
}
