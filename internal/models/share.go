package models

import "time"

type ShareLink struct {
	ID        int64      `json:"id"`
	FileID    string     `json:"file_id"`
	Token     string     `json:"token"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
