//go:generate go run go.uber.org/mock/mockgen -source=membership.go -destination=../mocks/mock_membership_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"sort"

	"group-chat/domain"
	"group-chat/errors"

	"github.com/dgraph-io/badger/v4"
)

// MutateFunc decides, from the committed state of one group, which single
// membership change to apply. Returning an error aborts without writing.
type MutateFunc func(group domain.Group, members domain.MemberSet) (domain.MemberChange, error)

type IMembershipRepository interface {
	GetMembership(ctx context.Context, groupID, userID string) (domain.Membership, error)
	ListMemberships(ctx context.Context, groupID string) (domain.MemberSet, error)
	ListUserMemberships(ctx context.Context, userID string) ([]domain.Membership, error)
	MutateMembers(ctx context.Context, groupID string, fn MutateFunc) (domain.MemberChange, error)
}

type MembershipRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMembershipRepository(db *badger.DB, log *slog.Logger) *MembershipRepository {
	return &MembershipRepository{db: db, log: log}
}

func (r *MembershipRepository) GetMembership(ctx context.Context, groupID, userID string) (domain.Membership, error) {
	var membership domain.Membership
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		err := getJSON(txn, memberKey(groupID, userID), &membership)
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrMemberNotFound
		}
		return err
	})
	return membership, err
}

func (r *MembershipRepository) ListMemberships(ctx context.Context, groupID string) (domain.MemberSet, error) {
	var members domain.MemberSet
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		var err error
		members, err = loadMemberSet(txn, groupID)
		return err
	})
	return members, err
}

// ListUserMemberships walks the user-group index, most recently joined first.
func (r *MembershipRepository) ListUserMemberships(ctx context.Context, userID string) ([]domain.Membership, error) {
	var memberships []domain.Membership
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		prefix := userGroupPrefix(userID)
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			groupID := string(it.Item().Key()[len(prefix):])
			var m domain.Membership
			err := getJSON(txn, memberKey(groupID, userID), &m)
			if stderrors.Is(err, badger.ErrKeyNotFound) {
				// index entry without its membership, skip
				continue
			}
			if err != nil {
				return err
			}
			memberships = append(memberships, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(memberships, func(i, j int) bool {
		return memberships[i].JoinedAt.After(memberships[j].JoinedAt)
	})
	return memberships, nil
}

// MutateMembers is the single atomic unit behind every invariant-guarded
// membership change. The group, its full member set and the revision key are
// read and the change written in one serializable transaction; a concurrent
// mutation of the same group makes one of them conflict and be replayed
// against fresh state.
func (r *MembershipRepository) MutateMembers(ctx context.Context, groupID string, fn MutateFunc) (domain.MemberChange, error) {
	var applied domain.MemberChange
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		group, err := loadGroup(txn, groupID)
		if err != nil {
			return err
		}
		members, err := loadMemberSet(txn, groupID)
		if err != nil {
			return err
		}
		change, err := fn(group, members)
		if err != nil {
			return err
		}
		change.Member.GroupID = groupID
		switch change.Kind {
		case domain.ChangePut:
			if err = putMembership(txn, change.Member); err != nil {
				return err
			}
		case domain.ChangeDelete:
			if err = deleteMembership(txn, change.Member); err != nil {
				return err
			}
		}
		if change.Kind != domain.ChangeNone {
			if err = bumpRevision(txn, groupID); err != nil {
				return err
			}
		}
		applied = change
		return nil
	})
	if err != nil {
		r.log.Debug("Membership mutation rejected", "group", groupID, "error", err)
		return domain.MemberChange{}, err
	}
	return applied, nil
}

// loadMemberSet reads every membership of a group. Inside an update
// transaction the iterated keys join the read set, so any concurrent write to
// them is detected at commit.
func loadMemberSet(txn *badger.Txn, groupID string) (domain.MemberSet, error) {
	prefix := memberPrefix(groupID)
	members := domain.MemberSet{}
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var m domain.Membership
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &m)
		}); err != nil {
			return nil, err
		}
		members[m.UserID] = m
	}
	return members, nil
}

func putMembership(txn *badger.Txn, m domain.Membership) error {
	if err := setJSON(txn, memberKey(m.GroupID, m.UserID), m); err != nil {
		return err
	}
	return txn.Set(userGroupKey(m.UserID, m.GroupID), []byte{})
}

func deleteMembership(txn *badger.Txn, m domain.Membership) error {
	if err := txn.Delete(memberKey(m.GroupID, m.UserID)); err != nil {
		return err
	}
	return txn.Delete(userGroupKey(m.UserID, m.GroupID))
}
