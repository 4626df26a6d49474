package database

import (
	"context"
	"errors"

	"serwer-dav/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type UploadSessionParams struct {
	UploadID         string
	OriginalFileName string
	OriginalFileSize int64
	TotalChunks      int
	FolderID         *string
}

// EnsureUploadSession tworzy sesję uploadu, jeśli jeszcze nie istnieje.
// Pierwszy fragment zakłada sesję, kolejne trafiają na istniejący rekord.
func (s *PostgresStore) EnsureUploadSession(ctx context.Context, arg UploadSessionParams) (*models.UploadSession, error) {
	query := `
		INSERT INTO upload_sessions (upload_id, original_file_name, original_file_size, total_chunks, folder_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (upload_id) DO NOTHING
	`
	_, err := s.pool.Exec(ctx, query,
		arg.UploadID,
		arg.OriginalFileName,
		arg.OriginalFileSize,
		arg.TotalChunks,
		arg.FolderID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrParentNotFound
		}
		return nil, err
	}

	return s.GetUploadSession(ctx, arg.UploadID)
}

func (s *PostgresStore) GetUploadSession(ctx context.Context, uploadID string) (*models.UploadSession, error) {
	query := `
		SELECT upload_id, original_file_name, original_file_size, total_chunks, folder_id, created_at
		FROM upload_sessions
		WHERE upload_id = $1
	`
	var session models.UploadSession

	err := s.pool.QueryRow(ctx, query, uploadID).Scan(
		&session.UploadID,
		&session.OriginalFileName,
		&session.OriginalFileSize,
		&session.TotalChunks,
		&session.FolderID,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

type PutUploadChunkParams struct {
	UploadID   string
	ChunkIndex int
	ContentRef string
	SizeBytes  int64
}

// PutUploadChunk zapisuje content_ref fragmentu pod jego indeksem. Ponowny
// zapis tego samego indeksu nadpisuje poprzedni wpis; zwracany jest wtedy
// poprzedni content_ref, żeby wołający mógł usunąć osierocony blob.
func (s *PostgresStore) PutUploadChunk(ctx context.Context, arg PutUploadChunkParams) (*string, error) {
	var prevRef *string

	err := s.ExecTx(ctx, func(q *Queries) error {
		selectQuery := `
			SELECT content_ref FROM upload_chunks
			WHERE upload_id = $1 AND chunk_index = $2
			FOR UPDATE
		`
		var existing string
		err := q.db.QueryRow(ctx, selectQuery, arg.UploadID, arg.ChunkIndex).Scan(&existing)
		if err == nil {
			prevRef = &existing
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		upsertQuery := `
			INSERT INTO upload_chunks (upload_id, chunk_index, content_ref, size_bytes)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (upload_id, chunk_index)
			DO UPDATE SET content_ref = EXCLUDED.content_ref, size_bytes = EXCLUDED.size_bytes
		`
		_, err = q.db.Exec(ctx, upsertQuery, arg.UploadID, arg.ChunkIndex, arg.ContentRef, arg.SizeBytes)
		return err
	})
	if err != nil {
		return nil, err
	}

	return prevRef, nil
}

func (s *PostgresStore) GetUploadChunks(ctx context.Context, uploadID string) ([]models.UploadChunk, error) {
	query := `
		SELECT upload_id, chunk_index, content_ref, size_bytes, created_at
		FROM upload_chunks
		WHERE upload_id = $1
		ORDER BY chunk_index
	`
	rows, err := s.pool.Query(ctx, query, uploadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []models.UploadChunk
	for rows.Next() {
		var chunk models.UploadChunk
		err := rows.Scan(
			&chunk.UploadID,
			&chunk.ChunkIndex,
			&chunk.ContentRef,
			&chunk.SizeBytes,
			&chunk.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if chunks == nil {
		return []models.UploadChunk{}, nil
	}

	return chunks, nil
}

// DeleteUploadSession usuwa sesję; wpisy fragmentów znikają kaskadowo.
func (s *PostgresStore) DeleteUploadSession(ctx context.Context, uploadID string) (bool, error) {
	res, err := s.pool.Exec(ctx, `DELETE FROM upload_sessions WHERE upload_id = $1`, uploadID)
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}
