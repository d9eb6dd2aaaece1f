// Package domain contains core concepts of the group chat.
// This file defines the Group entity.
// No runtime, network, or storage logic should be added here.
package domain

import "time"

type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsAdminOnly bool      `json:"is_admin_only"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}
