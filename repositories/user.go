//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"group-chat/domain"
	"group-chat/errors"

	"github.com/dgraph-io/badger/v4"
)

// IUserRepository is the identity directory. It only knows which users exist.
type IUserRepository interface {
	Touch(ctx context.Context, userID, name string, now time.Time) (domain.User, error)
	GetUser(ctx context.Context, userID string) (domain.User, error)
	Exists(ctx context.Context, userID string) (bool, error)
}

type UserRepository struct {
	db         *badger.DB
	log        *slog.Logger
	touchEvery time.Duration
}

func NewUserRepository(db *badger.DB, log *slog.Logger, touchEvery time.Duration) *UserRepository {
	return &UserRepository{db: db, log: log, touchEvery: touchEvery}
}

// Touch registers the user on first sight and refreshes LastSeenAt.
// An existing record is only rewritten when its LastSeenAt is older than
// touchEvery or its name changed, which keeps authenticated reads cheap.
func (u *UserRepository) Touch(ctx context.Context, userID, name string, now time.Time) (domain.User, error) {
	var result domain.User
	err := update(ctx, u.db, func(txn *badger.Txn) error {
		var user domain.User
		err := getJSON(txn, userKey(userID), &user)
		switch {
		case stderrors.Is(err, badger.ErrKeyNotFound):
			user = domain.User{ID: userID, Name: name, CreatedAt: now, LastSeenAt: now}
			u.log.Debug("Registering user", "user", userID)
		case err != nil:
			return err
		default:
			if now.Sub(user.LastSeenAt) < u.touchEvery && (name == "" || name == user.Name) {
				result = user
				return nil
			}
			user.LastSeenAt = now
			if name != "" {
				user.Name = name
			}
		}
		result = user
		return setJSON(txn, userKey(userID), user)
	})
	if err != nil {
		return domain.User{}, err
	}
	return result, nil
}

func (u *UserRepository) GetUser(ctx context.Context, userID string) (domain.User, error) {
	var user domain.User
	err := view(ctx, u.db, func(txn *badger.Txn) error {
		err := getJSON(txn, userKey(userID), &user)
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUserNotFound
		}
		return err
	})
	return user, err
}

func (u *UserRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var found bool
	err := view(ctx, u.db, func(txn *badger.Txn) error {
		var err error
		found, err = exists(txn, userKey(userID))
		return err
	})
	return found, err
}
