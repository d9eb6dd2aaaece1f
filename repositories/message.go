//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"group-chat/domain"
	"group-chat/errors"

	"github.com/dgraph-io/badger/v4"
)

type IMessageRepository interface {
	StoreMessage(ctx context.Context, message domain.Message) error
	GetMessage(ctx context.Context, messageID string) (domain.Message, error)
	AddReadReceipt(ctx context.Context, messageID, userID string, at time.Time) (domain.Message, bool, error)
	SoftDelete(ctx context.Context, messageID, deletedBy string, at time.Time) (domain.Message, bool, error)
	ListActive(ctx context.Context, groupID string, limit int, before *time.Time) ([]domain.Message, error)
	CountUnread(ctx context.Context, groupID, userID string) (int, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log}
}

// StoreMessage persists a message under its chronological key and records
// the id -> key index used by point lookups.
// The message id keeps keys unique when two messages share a nanosecond.
func (m *MessageRepository) StoreMessage(ctx context.Context, message domain.Message) error {
	key := messageKey(message.GroupID, message.CreatedAt, message.ID)
	return update(ctx, m.db, func(txn *badger.Txn) error {
		if err := setJSON(txn, key, message); err != nil {
			return err
		}
		return txn.Set(messageIDKey(message.ID), key)
	})
}

func (m *MessageRepository) GetMessage(ctx context.Context, messageID string) (domain.Message, error) {
	var message domain.Message
	err := view(ctx, m.db, func(txn *badger.Txn) error {
		var err error
		message, _, err = loadMessage(txn, messageID)
		return err
	})
	return message, err
}

// AddReadReceipt adds userID to the readers of a message as an atomic
// set-add. Two concurrent calls for the same user conflict on the message key
// and the replayed one finds the receipt already present, so duplicates
// cannot appear. It reports whether a receipt was added.
func (m *MessageRepository) AddReadReceipt(ctx context.Context, messageID, userID string, at time.Time) (domain.Message, bool, error) {
	var (
		result  domain.Message
		changed bool
	)
	err := update(ctx, m.db, func(txn *badger.Txn) error {
		message, key, err := loadMessage(txn, messageID)
		if err != nil {
			return err
		}
		changed = message.MarkReadBy(userID, at)
		result = message
		if !changed {
			return nil
		}
		return setJSON(txn, key, message)
	})
	if err != nil {
		return domain.Message{}, false, err
	}
	return result, changed, nil
}

// SoftDelete marks a message as deleted. Deleted is terminal: a second call
// returns the stored record unchanged and reports false.
func (m *MessageRepository) SoftDelete(ctx context.Context, messageID, deletedBy string, at time.Time) (domain.Message, bool, error) {
	var (
		result  domain.Message
		changed bool
	)
	err := update(ctx, m.db, func(txn *badger.Txn) error {
		message, key, err := loadMessage(txn, messageID)
		if err != nil {
			return err
		}
		changed = message.SoftDelete(deletedBy, at)
		result = message
		if !changed {
			return nil
		}
		return setJSON(txn, key, message)
	})
	if err != nil {
		return domain.Message{}, false, err
	}
	return result, changed, nil
}

// ListActive returns up to limit non-deleted messages of a group created
// strictly before the given instant (or the latest ones when before is nil),
// newest first.
// The scan runs on a reverse iterator: seeking to the padded timestamp of
// before lands on the last key older than it, because every key sharing that
// timestamp sorts after the bare "msg:{group}:{ts}" seek key.
func (m *MessageRepository) ListActive(ctx context.Context, groupID string, limit int, before *time.Time) ([]domain.Message, error) {
	var messages []domain.Message
	err := view(ctx, m.db, func(txn *badger.Txn) error {
		prefix := messagePrefix(groupID)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch before {
		case nil:
			seekKey = append(append([]byte{}, prefix...), 0xFF)
		default:
			seekKey = append(append([]byte{}, prefix...), []byte(fmt.Sprintf("%019d", before.UnixNano()))...)
		}

		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if len(messages) == limit {
				break
			}
			var message domain.Message
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &message)
			}); err != nil {
				return err
			}
			if message.Deleted {
				continue
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// CountUnread counts the active messages of a group that userID has not read.
func (m *MessageRepository) CountUnread(ctx context.Context, groupID, userID string) (int, error) {
	count := 0
	err := view(ctx, m.db, func(txn *badger.Txn) error {
		prefix := messagePrefix(groupID)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var message domain.Message
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &message)
			}); err != nil {
				return err
			}
			if !message.Deleted && !message.HasReadBy(userID) {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func loadMessage(txn *badger.Txn, messageID string) (domain.Message, []byte, error) {
	item, err := txn.Get(messageIDKey(messageID))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Message{}, nil, errors.ErrMessageNotFound
	}
	if err != nil {
		return domain.Message{}, nil, err
	}
	key, err := item.ValueCopy(nil)
	if err != nil {
		return domain.Message{}, nil, err
	}
	var message domain.Message
	err = getJSON(txn, key, &message)
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Message{}, nil, errors.ErrMessageNotFound
	}
	if err != nil {
		return domain.Message{}, nil, err
	}
	return message, key, nil
}
