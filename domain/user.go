package domain

import "time"

// User is an entry of the identity directory. Users are created the first
// time a verified bearer token is seen and never deleted.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
