package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMessage_MarkReadBy(t *testing.T) {
	req := require.New(t)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := Message{ID: "m1", SenderID: "bob", ReadBy: []ReadReceipt{{UserID: "bob", ReadAt: t0}}}

	req.False(m.MarkReadBy("bob", t0.Add(time.Minute)))
	req.True(m.MarkReadBy("alice", t0.Add(time.Minute)))
	req.False(m.MarkReadBy("alice", t0.Add(time.Hour)))

	req.Len(m.ReadBy, 2)
	req.Equal(t0.Add(time.Minute), m.ReadBy[1].ReadAt)
}

func TestMessage_SoftDeleteIsTerminal(t *testing.T) {
	req := require.New(t)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := Message{ID: "m1", SenderID: "bob"}
	req.Equal(MessageActive, m.State())

	// When deleted twice
	req.True(m.SoftDelete("alice", t0))
	req.False(m.SoftDelete("bob", t0.Add(time.Hour)))

	// Then the first deletion sticks
	req.Equal(MessageDeleted, m.State())
	req.Equal("alice", m.DeletedBy)
	req.Equal(t0, *m.DeletedAt)

	// And it can still be marked as read
	req.True(m.MarkReadBy("carol", t0))
}
