// Package domain contains core concepts of the group chat.
// This file defines Membership entities and the per-group member set
// that admin invariants are evaluated against.
package domain

import (
	"sort"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Membership links a user to a group. At most one exists per (GroupID, UserID).
// A nil MuteUntil while IsMuted is set means the mute never expires.
type Membership struct {
	GroupID   string     `json:"group_id"`
	UserID    string     `json:"user_id"`
	Role      Role       `json:"role"`
	IsMuted   bool       `json:"is_muted"`
	MuteUntil *time.Time `json:"mute_until,omitempty"`
	JoinedAt  time.Time  `json:"joined_at"`
}

func (m Membership) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// MuteActive reports whether the mute window still blocks sends at now.
// A timed mute ending exactly at now is already over.
func (m Membership) MuteActive(now time.Time) bool {
	if !m.IsMuted {
		return false
	}
	return m.MuteUntil == nil || m.MuteUntil.After(now)
}

// MemberSet is the complete membership of one group keyed by user ID.
// Guarded mutations load it, decide, and write back as a single unit.
type MemberSet map[string]Membership

func NewMemberSet(members ...Membership) MemberSet {
	set := make(MemberSet, len(members))
	for _, m := range members {
		set[m.UserID] = m
	}
	return set
}

func (s MemberSet) Get(userID string) (Membership, bool) {
	m, ok := s[userID]
	return m, ok
}

func (s MemberSet) Len() int {
	return len(s)
}

func (s MemberSet) AdminCount() int {
	count := 0
	for _, m := range s {
		if m.IsAdmin() {
			count++
		}
	}
	return count
}

// CanLoseAdmin reports whether the group keeps at least one admin if userID
// stops being one. The count includes the target itself, so a sole admin
// yields false.
func (s MemberSet) CanLoseAdmin(userID string) bool {
	m, ok := s[userID]
	if !ok || !m.IsAdmin() {
		return true
	}
	return s.AdminCount() > 1
}

// Sorted lists admins first, then members, each by join date.
func (s MemberSet) Sorted() []Membership {
	out := make([]Membership, 0, len(s))
	for _, m := range s {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsAdmin() != out[j].IsAdmin() {
			return out[i].IsAdmin()
		}
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

type ChangeKind int

const (
	ChangeNone ChangeKind = iota
	ChangePut
	ChangeDelete
)

// MemberChange is what a guarded mutation asks the store to write.
type MemberChange struct {
	Kind   ChangeKind
	Member Membership
}

func NoChange(m Membership) MemberChange {
	return MemberChange{Kind: ChangeNone, Member: m}
}

func PutMember(m Membership) MemberChange {
	return MemberChange{Kind: ChangePut, Member: m}
}

func DeleteMember(m Membership) MemberChange {
	return MemberChange{Kind: ChangeDelete, Member: m}
}
