package repositories

import (
	"context"
	"encoding/binary"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"group-chat/errors"

	"github.com/dgraph-io/badger/v4"
)

// maxTxnRetries bounds how many times a transaction that lost a
// write-write race on the same keys is replayed before giving up.
const maxTxnRetries = 8

const retryBaseDelay = 2 * time.Millisecond

// Key layout. IDs never contain ':' (UUIDs for groups and messages, validated
// subjects for users) so prefixes cannot collide.
func groupKey(groupID string) []byte { return []byte("group:" + groupID) }

func memberKey(groupID, userID string) []byte {
	return []byte(fmt.Sprintf("member:%s:%s", groupID, userID))
}

func memberPrefix(groupID string) []byte { return []byte(fmt.Sprintf("member:%s:", groupID)) }

// memberRevKey is read and rewritten by every guarded membership mutation so
// that two of them on the same group always conflict in badger.
func memberRevKey(groupID string) []byte { return []byte("member-rev:" + groupID) }

func userGroupKey(userID, groupID string) []byte {
	return []byte(fmt.Sprintf("user-group:%s:%s", userID, groupID))
}

func userGroupPrefix(userID string) []byte { return []byte(fmt.Sprintf("user-group:%s:", userID)) }

// messageKey is formatted as "msg:{group}:{timestamp_padded}:{id}" so that a
// prefix scan walks a group's history in chronological order. The 19-digit
// padding keeps lexicographic order equal to numeric order.
func messageKey(groupID string, at time.Time, messageID string) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%s", groupID, at.UnixNano(), messageID))
}

func messagePrefix(groupID string) []byte { return []byte(fmt.Sprintf("msg:%s:", groupID)) }

func messageIDKey(messageID string) []byte { return []byte("msg-id:" + messageID) }

func userKey(userID string) []byte { return []byte("user:" + userID) }

// update runs fn in a read-write transaction.
// Conflicts are replayed up to maxTxnRetries times, then surface as ErrStorage.
// Domain errors returned by fn pass through untouched; anything else is
// classified as a storage failure.
func update(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Storage(ctxErr)
		}
		var fnErr error
		err = db.Update(func(txn *badger.Txn) error {
			fnErr = fn(txn)
			return fnErr
		})
		if err == nil {
			return nil
		}
		if fnErr != nil {
			return classify(fnErr)
		}
		if !stderrors.Is(err, badger.ErrConflict) {
			return errors.Storage(err)
		}
		select {
		case <-ctx.Done():
			return errors.Storage(ctx.Err())
		case <-time.After(retryBaseDelay * time.Duration(attempt+1)):
		}
	}
	return errors.Storage(fmt.Errorf("gave up after %d attempts: %w", maxTxnRetries, err))
}

func view(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Storage(err)
	}
	if err := db.View(fn); err != nil {
		return classify(err)
	}
	return nil
}

func classify(err error) error {
	if errors.Code(err) == "INTERNAL" {
		return errors.Storage(err)
	}
	return err
}

// getJSON decodes the value stored at key into v.
// A missing key is reported as badger.ErrKeyNotFound for the caller to map.
func getJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	bytes, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, bytes)
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

// bumpRevision increments the per-group membership revision.
func bumpRevision(txn *badger.Txn, groupID string) error {
	key := memberRevKey(groupID)
	var rev uint64
	item, err := txn.Get(key)
	switch {
	case err == nil:
		if err = item.Value(func(val []byte) error {
			if len(val) == 8 {
				rev = binary.BigEndian.Uint64(val)
			}
			return nil
		}); err != nil {
			return err
		}
	case !stderrors.Is(err, badger.ErrKeyNotFound):
		return err
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, rev+1)
	return txn.Set(key, buf)
}
