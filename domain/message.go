// Package domain contains core concepts of the group chat.
// This file defines Message records and their soft-delete lifecycle.
package domain

import (
	"time"
)

type MessageType string

const (
	MessageText   MessageType = "text"
	MessageImage  MessageType = "image"
	MessageFile   MessageType = "file"
	MessageSystem MessageType = "system"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageText, MessageImage, MessageFile, MessageSystem:
		return true
	}
	return false
}

type MessageState string

const (
	MessageActive  MessageState = "active"
	MessageDeleted MessageState = "deleted"
)

type Attachment struct {
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name,omitempty"`
}

type ReadReceipt struct {
	UserID string    `json:"user_id"`
	ReadAt time.Time `json:"read_at"`
}

// Message is never erased. Once Deleted is set, only ReadBy may still change.
type Message struct {
	ID         string        `json:"id"`
	GroupID    string        `json:"group_id"`
	SenderID   string        `json:"sender_id"`
	Content    string        `json:"content"`
	Type       MessageType   `json:"message_type"`
	Attachment *Attachment   `json:"attachment,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	Deleted    bool          `json:"deleted"`
	DeletedAt  *time.Time    `json:"deleted_at,omitempty"`
	DeletedBy  string        `json:"deleted_by,omitempty"`
	ReadBy     []ReadReceipt `json:"read_by"`
}

func (m Message) State() MessageState {
	if m.Deleted {
		return MessageDeleted
	}
	return MessageActive
}

func (m Message) HasReadBy(userID string) bool {
	for _, r := range m.ReadBy {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// MarkReadBy appends a receipt unless userID already has one.
// It reports whether the message changed.
func (m *Message) MarkReadBy(userID string, at time.Time) bool {
	if m.HasReadBy(userID) {
		return false
	}
	m.ReadBy = append(m.ReadBy, ReadReceipt{UserID: userID, ReadAt: at})
	return true
}

// SoftDelete moves an active message to the terminal deleted state.
// It reports false when the message was already deleted.
func (m *Message) SoftDelete(by string, at time.Time) bool {
	if m.Deleted {
		return false
	}
	m.Deleted = true
	m.DeletedAt = &at
	m.DeletedBy = by
	return true
}

// MessagePage is one page of history, oldest first.
// HasMore is true when the page is full; a full last page is indistinguishable
// from a page followed by more data.
type MessagePage struct {
	Messages []Message `json:"messages"`
	HasMore  bool      `json:"has_more"`
}
