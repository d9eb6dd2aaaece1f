package event

import (
	"time"

	"group-chat/domain"
)

// DomainEvent is emitted after a state change has been committed.
// Consumers must never be able to influence the outcome of the action.
type DomainEvent interface {
	GroupID() string
	Kind() string
}

type GroupCreated struct {
	Group domain.Group
}

func (e GroupCreated) GroupID() string { return e.Group.ID }
func (e GroupCreated) Kind() string    { return "group_created" }

type GroupUpdated struct {
	Group     domain.Group
	UpdatedBy string
}

func (e GroupUpdated) GroupID() string { return e.Group.ID }
func (e GroupUpdated) Kind() string    { return "group_updated" }

type AdminOnlyToggled struct {
	Group       string
	IsAdminOnly bool
	ToggledBy   string
}

func (e AdminOnlyToggled) GroupID() string { return e.Group }
func (e AdminOnlyToggled) Kind() string    { return "admin_only_toggled" }

type MemberAdded struct {
	Member  domain.Membership
	AddedBy string
}

func (e MemberAdded) GroupID() string { return e.Member.GroupID }
func (e MemberAdded) Kind() string    { return "member_added" }

// MemberRemoved covers both removals by an admin and voluntary leaves,
// in which case RemovedBy equals the member's own ID.
type MemberRemoved struct {
	Group     string
	UserID    string
	RemovedBy string
}

func (e MemberRemoved) GroupID() string { return e.Group }
func (e MemberRemoved) Kind() string    { return "member_removed" }

type RoleUpdated struct {
	Member    domain.Membership
	UpdatedBy string
}

func (e RoleUpdated) GroupID() string { return e.Member.GroupID }
func (e RoleUpdated) Kind() string    { return "role_updated" }

type MemberMuted struct {
	Member  domain.Membership
	MutedBy string
	Reason  string
}

func (e MemberMuted) GroupID() string { return e.Member.GroupID }
func (e MemberMuted) Kind() string    { return "member_muted" }

type MemberUnmuted struct {
	Member    domain.Membership
	UnmutedBy string
}

func (e MemberUnmuted) GroupID() string { return e.Member.GroupID }
func (e MemberUnmuted) Kind() string    { return "member_unmuted" }

type MessageSent struct {
	Message domain.Message
}

func (e MessageSent) GroupID() string { return e.Message.GroupID }
func (e MessageSent) Kind() string    { return "message_sent" }

type MessageRead struct {
	Group     string
	MessageID string
	UserID    string
	ReadAt    time.Time
}

func (e MessageRead) GroupID() string { return e.Group }
func (e MessageRead) Kind() string    { return "message_read" }

type MessageDeleted struct {
	Group     string
	MessageID string
	DeletedBy string
	DeletedAt time.Time
}

func (e MessageDeleted) GroupID() string { return e.Group }
func (e MessageDeleted) Kind() string    { return "message_deleted" }
