//go:generate go run go.uber.org/mock/mockgen -source=search.go -destination=../mocks/mock_message_index.go -package=mocks
package repositories

import (
	"context"
	"log/slog"

	"group-chat/domain"
	"group-chat/errors"

	"github.com/blugelabs/bluge"
)

const (
	fieldGroup   = "group"
	fieldSender  = "sender"
	fieldContent = "content"
	fieldID      = "_id"
)

// IMessageIndex is the full-text index over message content.
// It only returns message ids; the store stays the source of truth.
type IMessageIndex interface {
	Index(ctx context.Context, message domain.Message) error
	Remove(ctx context.Context, messageID string) error
	Search(ctx context.Context, groupID, query string, limit int) ([]string, error)
}

type MessageIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewMessageIndex(writer *bluge.Writer, log *slog.Logger) *MessageIndex {
	return &MessageIndex{writer: writer, log: log}
}

func (i *MessageIndex) Index(_ context.Context, message domain.Message) error {
	doc := bluge.NewDocument(message.ID).
		AddField(bluge.NewKeywordField(fieldGroup, message.GroupID)).
		AddField(bluge.NewKeywordField(fieldSender, message.SenderID)).
		AddField(bluge.NewTextField(fieldContent, message.Content))
	if err := i.writer.Update(doc.ID(), doc); err != nil {
		return errors.Storage(err)
	}
	return nil
}

func (i *MessageIndex) Remove(_ context.Context, messageID string) error {
	if err := i.writer.Delete(bluge.Identifier(messageID)); err != nil {
		return errors.Storage(err)
	}
	return nil
}

// Search matches query against message content within one group and returns
// the ids of the best scoring documents.
func (i *MessageIndex) Search(ctx context.Context, groupID, query string, limit int) ([]string, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, errors.Storage(err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			i.log.Warn("Unable to close index reader", "error", err)
		}
	}()

	q := bluge.NewBooleanQuery().
		AddMust(bluge.NewTermQuery(groupID).SetField(fieldGroup)).
		AddMust(bluge.NewMatchQuery(query).SetField(fieldContent))
	request := bluge.NewTopNSearch(limit, q)

	matches, err := reader.Search(ctx, request)
	if err != nil {
		return nil, errors.Storage(err)
	}

	var ids []string
	match, err := matches.Next()
	for err == nil && match != nil {
		if visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == fieldID {
				ids = append(ids, string(value))
				return false
			}
			return true
		}); visitErr != nil {
			return nil, errors.Storage(visitErr)
		}
		match, err = matches.Next()
	}
	if err != nil {
		return nil, errors.Storage(err)
	}
	return ids, nil
}
