//go:generate go run go.uber.org/mock/mockgen -source=group.go -destination=../mocks/mock_group_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"time"

	"group-chat/contract"
	"group-chat/domain"
	"group-chat/domain/event"
	"group-chat/observability"
	"group-chat/repositories"
	"group-chat/validation"

	"github.com/google/uuid"
)

type IGroupService interface {
	CreateGroup(ctx context.Context, creatorID string, request validation.CreateGroupRequest) (domain.Group, error)
	ToggleAdminOnly(ctx context.Context, groupID, actingID string) (domain.Group, error)
	UpdateGroup(ctx context.Context, groupID, actingID string, request validation.UpdateGroupRequest) (domain.Group, error)
	GetGroup(ctx context.Context, groupID, actingID string) (GroupDetails, error)
	ListMyGroups(ctx context.Context, userID string) ([]UserGroup, error)
}

// GroupDetails is a group seen by one of its members.
type GroupDetails struct {
	Group   domain.Group        `json:"group"`
	Members []domain.Membership `json:"members"`
}

// UserGroup is one entry of a user's group list.
type UserGroup struct {
	Group domain.Group `json:"group"`
	Role  domain.Role  `json:"role"`
}

type GroupService struct {
	groups    repositories.IGroupRepository
	members   repositories.IMembershipRepository
	publisher contract.IPublisher
	metrics   *observability.Metrics
	clock     contract.Clock
	log       *slog.Logger
}

func NewGroupService(
	groups repositories.IGroupRepository,
	members repositories.IMembershipRepository,
	publisher contract.IPublisher,
	metrics *observability.Metrics,
	clock contract.Clock,
	log *slog.Logger,
) *GroupService {
	return &GroupService{groups: groups, members: members, publisher: publisher, metrics: metrics, clock: clock, log: log}
}

// CreateGroup only needs an identity. The creator becomes the first admin in
// the same write as the group itself.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID string, request validation.CreateGroupRequest) (_ domain.Group, err error) {
	defer func(start time.Time) { s.metrics.ObserveDecision("create_group", start, err) }(time.Now())

	if err = validation.Validate(&request); err != nil {
		return domain.Group{}, err
	}
	now := s.clock()
	group := domain.Group{
		ID:          uuid.NewString(),
		Name:        request.Name,
		Description: request.Description,
		IsAdminOnly: request.IsAdminOnly,
		CreatorID:   creatorID,
		CreatedAt:   now,
	}
	creator := domain.Membership{GroupID: group.ID, UserID: creatorID, Role: domain.RoleAdmin, JoinedAt: now}
	if err = s.groups.CreateGroup(ctx, group, creator); err != nil {
		return domain.Group{}, err
	}

	s.log.Info("Group created", "group", group.ID, "creator", creatorID)
	s.publisher.Publish(event.GroupCreated{Group: group})
	s.publisher.Publish(event.MemberAdded{Member: creator, AddedBy: creatorID})
	return group, nil
}

func (s *GroupService) ToggleAdminOnly(ctx context.Context, groupID, actingID string) (_ domain.Group, err error) {
	defer func(start time.Time) { s.metrics.ObserveDecision("toggle_admin_only", start, err) }(time.Now())

	group, err := s.groups.UpdateGroup(ctx, groupID, func(group *domain.Group, members domain.MemberSet) error {
		if _, err := AdminOf(members, actingID); err != nil {
			return err
		}
		group.IsAdminOnly = !group.IsAdminOnly
		return nil
	})
	if err != nil {
		return domain.Group{}, err
	}

	s.log.Info("Admin-only mode toggled", "group", groupID, "admin_only", group.IsAdminOnly, "by", actingID)
	s.publisher.Publish(event.AdminOnlyToggled{Group: groupID, IsAdminOnly: group.IsAdminOnly, ToggledBy: actingID})
	return group, nil
}

// UpdateGroup edits name and description. Absent fields are kept.
func (s *GroupService) UpdateGroup(ctx context.Context, groupID, actingID string, request validation.UpdateGroupRequest) (_ domain.Group, err error) {
	defer func(start time.Time) { s.metrics.ObserveDecision("update_group", start, err) }(time.Now())

	if err = validation.Validate(&request); err != nil {
		return domain.Group{}, err
	}
	group, err := s.groups.UpdateGroup(ctx, groupID, func(group *domain.Group, members domain.MemberSet) error {
		if _, err := AdminOf(members, actingID); err != nil {
			return err
		}
		if request.Name != nil {
			group.Name = *request.Name
		}
		if request.Description != nil {
			group.Description = *request.Description
		}
		return nil
	})
	if err != nil {
		return domain.Group{}, err
	}

	s.publisher.Publish(event.GroupUpdated{Group: group, UpdatedBy: actingID})
	return group, nil
}

func (s *GroupService) GetGroup(ctx context.Context, groupID, actingID string) (GroupDetails, error) {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return GroupDetails{}, err
	}
	members, err := s.members.ListMemberships(ctx, groupID)
	if err != nil {
		return GroupDetails{}, err
	}
	if _, err = MemberOf(members, actingID); err != nil {
		return GroupDetails{}, err
	}
	return GroupDetails{Group: group, Members: members.Sorted()}, nil
}

// ListMyGroups returns the groups of userID, most recently joined first.
func (s *GroupService) ListMyGroups(ctx context.Context, userID string) ([]UserGroup, error) {
	memberships, err := s.members.ListUserMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	groups := make([]UserGroup, 0, len(memberships))
	for _, m := range memberships {
		group, err := s.groups.GetGroup(ctx, m.GroupID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, UserGroup{Group: group, Role: m.Role})
	}
	return groups, nil
}
