//go:generate go run go.uber.org/mock/mockgen -source=group.go -destination=../mocks/mock_group_repository.go -package=mocks
package repositories

import (
	"context"
	stderrors "errors"
	"log/slog"

	"group-chat/domain"
	"group-chat/errors"

	"github.com/dgraph-io/badger/v4"
)

type IGroupRepository interface {
	CreateGroup(ctx context.Context, group domain.Group, creator domain.Membership) error
	GetGroup(ctx context.Context, groupID string) (domain.Group, error)
	UpdateGroup(ctx context.Context, groupID string, fn func(group *domain.Group, members domain.MemberSet) error) (domain.Group, error)
}

type GroupRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewGroupRepository(db *badger.DB, log *slog.Logger) *GroupRepository {
	return &GroupRepository{db: db, log: log}
}

// CreateGroup writes the group and its creator's admin membership in one
// transaction, so a group is never observable without an admin.
func (r *GroupRepository) CreateGroup(ctx context.Context, group domain.Group, creator domain.Membership) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		if err := setJSON(txn, groupKey(group.ID), group); err != nil {
			return err
		}
		if err := putMembership(txn, creator); err != nil {
			return err
		}
		return bumpRevision(txn, group.ID)
	})
}

func (r *GroupRepository) GetGroup(ctx context.Context, groupID string) (domain.Group, error) {
	var group domain.Group
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		var err error
		group, err = loadGroup(txn, groupID)
		return err
	})
	return group, err
}

// UpdateGroup loads the group with its members and lets fn edit the group
// metadata in place. fn decides authorization against the loaded members;
// returning an error leaves the group untouched. The membership revision is
// bumped so the edit conflicts with any concurrent demotion of the actor.
func (r *GroupRepository) UpdateGroup(ctx context.Context, groupID string, fn func(group *domain.Group, members domain.MemberSet) error) (domain.Group, error) {
	var updated domain.Group
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		group, err := loadGroup(txn, groupID)
		if err != nil {
			return err
		}
		members, err := loadMemberSet(txn, groupID)
		if err != nil {
			return err
		}
		if err = fn(&group, members); err != nil {
			return err
		}
		group.ID = groupID
		if err = setJSON(txn, groupKey(groupID), group); err != nil {
			return err
		}
		updated = group
		return bumpRevision(txn, groupID)
	})
	if err != nil {
		return domain.Group{}, err
	}
	return updated, nil
}

func loadGroup(txn *badger.Txn, groupID string) (domain.Group, error) {
	var group domain.Group
	err := getJSON(txn, groupKey(groupID), &group)
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Group{}, errors.ErrGroupNotFound
	}
	return group, err
}
