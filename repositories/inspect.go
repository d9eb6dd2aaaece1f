package repositories

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	"group-chat/domain"

	"github.com/mama165/sdk-go/database"
)

// InspectMapper renders one raw badger entry for the debug inspector and the
// inspect CLI. Unknown prefixes fall back to the default rendering.
func InspectMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	prefix, _, _ := strings.Cut(key, ":")

	switch prefix {
	case "group":
		var g domain.Group
		if err := json.Unmarshal(val, &g); err != nil {
			return unreadable(row, "GROUP", err)
		}
		row.Type = "GROUP"
		row.Detail = fmt.Sprintf("%s admin_only=%t creator=%s", g.Name, g.IsAdminOnly, g.CreatorID)
	case "member":
		var m domain.Membership
		if err := json.Unmarshal(val, &m); err != nil {
			return unreadable(row, "MEMBER", err)
		}
		row.Type = "MEMBER"
		row.Detail = fmt.Sprintf("%s role=%s muted=%t", m.UserID, m.Role, m.IsMuted)
	case "member-rev":
		row.Type = "REVISION"
		if len(val) == 8 {
			row.Detail = fmt.Sprintf("rev=%d", binary.BigEndian.Uint64(val))
		}
	case "msg":
		var m domain.Message
		if err := json.Unmarshal(val, &m); err != nil {
			return unreadable(row, "MESSAGE", err)
		}
		row.Type = "MESSAGE"
		row.Detail = fmt.Sprintf("[%s] %s: %s (read by %d)", m.State(), m.SenderID, m.Content, len(m.ReadBy))
	case "msg-id":
		row.Type = "MESSAGE_INDEX"
		row.Detail = string(val)
	case "user-group":
		row.Type = "USER_INDEX"
	case "user":
		var u domain.User
		if err := json.Unmarshal(val, &u); err != nil {
			return unreadable(row, "USER", err)
		}
		row.Type = "USER"
		row.Detail = fmt.Sprintf("%s last_seen=%s", u.Name, u.LastSeenAt.Format("2006-01-02 15:04:05"))
	}
	return row
}

func unreadable(row database.InspectRow, kind string, err error) database.InspectRow {
	row.Type = kind
	row.Detail = "Error: " + err.Error()
	return row
}
