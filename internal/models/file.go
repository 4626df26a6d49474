package models

import "time"

type File struct {
	ID         string    `json:"id"`
	FolderID   *string   `json:"folder_id"`
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size_bytes"`
	MimeType   *string   `json:"mime_type"`
	ContentRef string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
