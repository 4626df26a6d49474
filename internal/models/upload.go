package models

import "time"

// UploadSession opisuje jeden trwający upload podzielony na fragmenty.
// Sesja powstaje przy pierwszym fragmencie i znika po scaleniu lub sprzątaniu.
type UploadSession struct {
	UploadID         string    `json:"upload_id"`
	OriginalFileName string    `json:"original_file_name"`
	OriginalFileSize int64     `json:"original_file_size"`
	TotalChunks      int       `json:"total_chunks"`
	FolderID         *string   `json:"folder_id"`
	CreatedAt        time.Time `json:"created_at"`
}

type UploadChunk struct {
	UploadID   string    `json:"upload_id"`
	ChunkIndex int       `json:"chunk_index"`
	ContentRef string    `json:"-"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}
