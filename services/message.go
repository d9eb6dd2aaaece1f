//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"group-chat/contract"
	"group-chat/domain"
	"group-chat/domain/event"
	"group-chat/errors"
	"group-chat/observability"
	"group-chat/repositories"
	"group-chat/validation"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ContentFilter masks forbidden words. It returns the words it found.
type ContentFilter interface {
	Censor(content string) (string, []string)
}

type IMessageService interface {
	Send(ctx context.Context, groupID, senderID string, request validation.SendMessageRequest) (domain.Message, error)
	MarkRead(ctx context.Context, messageID, userID string) (domain.Message, error)
	SoftDelete(ctx context.Context, messageID, actingID string) (domain.Message, error)
	ListMessages(ctx context.Context, groupID, actingID string, limit int, before *time.Time) (domain.MessagePage, error)
	UnreadCount(ctx context.Context, groupID, userID string) (int, error)
	Search(ctx context.Context, groupID, actingID, query string, limit int) ([]domain.Message, error)
}

type MessageService struct {
	gate      IAuthorizationGate
	messages  repositories.IMessageRepository
	index     repositories.IMessageIndex
	filter    ContentFilter
	publisher contract.IPublisher
	metrics   *observability.Metrics
	clock     contract.Clock
	log       *slog.Logger
}

func NewMessageService(
	gate IAuthorizationGate,
	messages repositories.IMessageRepository,
	index repositories.IMessageIndex,
	filter ContentFilter,
	publisher contract.IPublisher,
	metrics *observability.Metrics,
	clock contract.Clock,
	log *slog.Logger,
) *MessageService {
	return &MessageService{
		gate:      gate,
		messages:  messages,
		index:     index,
		filter:    filter,
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
		log:       log,
	}
}

// Send checks the sender's permission, then the request shape, and stores the
// message with the sender as its first reader.
func (s *MessageService) Send(ctx context.Context, groupID, senderID string, request validation.SendMessageRequest) (_ domain.Message, err error) {
	defer func(start time.Time) { s.metrics.ObserveDecision("send_message", start, err) }(time.Now())

	if _, err = s.gate.CheckSendPermission(ctx, groupID, senderID); err != nil {
		return domain.Message{}, err
	}
	if err = validation.Validate(&request); err != nil {
		return domain.Message{}, err
	}

	content := request.Content
	if s.filter != nil {
		var words []string
		if content, words = s.filter.Censor(content); len(words) > 0 {
			s.log.Debug("Message censored", "group", groupID, "sender", senderID, "hits", len(words))
		}
	}

	now := s.clock()
	message := domain.Message{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		SenderID:  senderID,
		Content:   content,
		Type:      lo.Ternary(request.MessageType == "", domain.MessageText, domain.MessageType(request.MessageType)),
		CreatedAt: now,
		ReadBy:    []domain.ReadReceipt{{UserID: senderID, ReadAt: now}},
	}
	if request.FileURL != "" {
		message.Attachment = &domain.Attachment{FileURL: request.FileURL, FileName: request.FileName}
	}
	if err = s.messages.StoreMessage(ctx, message); err != nil {
		return domain.Message{}, err
	}

	s.publisher.Publish(event.MessageSent{Message: message})
	return message, nil
}

// MarkRead adds userID to the readers of a message. Reading twice is a no-op.
func (s *MessageService) MarkRead(ctx context.Context, messageID, userID string) (_ domain.Message, err error) {
	defer func(start time.Time) { s.metrics.ObserveDecision("mark_read", start, err) }(time.Now())

	message, err := s.messages.GetMessage(ctx, messageID)
	if err != nil {
		return domain.Message{}, err
	}
	if _, err = s.gate.RequireMember(ctx, message.GroupID, userID); err != nil {
		return domain.Message{}, err
	}
	now := s.clock()
	message, added, err := s.messages.AddReadReceipt(ctx, messageID, userID, now)
	if err != nil {
		return domain.Message{}, err
	}
	if added {
		s.publisher.Publish(event.MessageRead{Group: message.GroupID, MessageID: messageID, UserID: userID, ReadAt: now})
	}
	return message, nil
}

// SoftDelete hides a message. Only its sender or an admin of its group may
// do so; deleting an already deleted message returns it unchanged.
func (s *MessageService) SoftDelete(ctx context.Context, messageID, actingID string) (_ domain.Message, err error) {
	defer func(start time.Time) { s.metrics.ObserveDecision("delete_message", start, err) }(time.Now())

	message, err := s.messages.GetMessage(ctx, messageID)
	if err != nil {
		return domain.Message{}, err
	}
	if message.SenderID != actingID {
		_, err = s.gate.RequireAdmin(ctx, message.GroupID, actingID)
		switch {
		case stderrors.Is(err, errors.ErrNotMember), stderrors.Is(err, errors.ErrNotAdmin):
			return domain.Message{}, errors.ErrNotAuthorized
		case err != nil:
			return domain.Message{}, err
		}
	}

	deleted, changed, err := s.messages.SoftDelete(ctx, messageID, actingID, s.clock())
	if err != nil {
		return domain.Message{}, err
	}
	if changed {
		s.log.Info("Message deleted", "group", deleted.GroupID, "message", messageID, "by", actingID)
		s.publisher.Publish(event.MessageDeleted{
			Group:     deleted.GroupID,
			MessageID: messageID,
			DeletedBy: actingID,
			DeletedAt: *deleted.DeletedAt,
		})
	}
	return deleted, nil
}

// ListMessages returns active messages older than before, oldest first.
// HasMore only means the page is full: an exact final page also reports true.
func (s *MessageService) ListMessages(ctx context.Context, groupID, actingID string, limit int, before *time.Time) (domain.MessagePage, error) {
	if limit == 0 {
		limit = validation.DefaultMessageLimit
	}
	if err := validation.Validate(&validation.ListMessagesRequest{Limit: limit, Before: before}); err != nil {
		return domain.MessagePage{}, err
	}
	if _, err := s.gate.RequireMember(ctx, groupID, actingID); err != nil {
		return domain.MessagePage{}, err
	}
	newestFirst, err := s.messages.ListActive(ctx, groupID, limit, before)
	if err != nil {
		return domain.MessagePage{}, err
	}
	return domain.MessagePage{
		Messages: lo.Reverse(newestFirst),
		HasMore:  len(newestFirst) == limit,
	}, nil
}

func (s *MessageService) UnreadCount(ctx context.Context, groupID, userID string) (int, error) {
	if _, err := s.gate.RequireMember(ctx, groupID, userID); err != nil {
		return 0, err
	}
	return s.messages.CountUnread(ctx, groupID, userID)
}

// Search queries the full-text index, then reloads every hit from the store
// so that messages deleted after indexing are never returned.
func (s *MessageService) Search(ctx context.Context, groupID, actingID, query string, limit int) ([]domain.Message, error) {
	if limit == 0 {
		limit = validation.DefaultSearchLimit
	}
	request := validation.SearchRequest{Query: query, Limit: limit}
	if err := validation.Validate(&request); err != nil {
		return nil, err
	}
	if _, err := s.gate.RequireMember(ctx, groupID, actingID); err != nil {
		return nil, err
	}
	ids, err := s.index.Search(ctx, groupID, request.Query, request.Limit)
	if err != nil {
		return nil, err
	}
	messages := make([]domain.Message, 0, len(ids))
	for _, id := range ids {
		message, err := s.messages.GetMessage(ctx, id)
		if stderrors.Is(err, errors.ErrMessageNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if message.Deleted || message.GroupID != groupID {
			continue
		}
		messages = append(messages, message)
	}
	return messages, nil
}
