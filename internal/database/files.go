package database

import (
	"context"
	"errors"
	"time"

	"serwer-dav/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type CreateFileParams struct {
	ID         string
	FolderID   *string
	Name       string
	SizeBytes  int64
	MimeType   *string
	ContentRef string
}

func (s *PostgresStore) CreateFile(ctx context.Context, arg CreateFileParams) (*models.File, error) {
	query := `
		INSERT INTO files (id, folder_id, name, size_bytes, mime_type, content_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, folder_id, name, size_bytes, mime_type, content_ref, created_at, updated_at
	`
	now := time.Now()

	row := s.pool.QueryRow(ctx, query,
		arg.ID,
		arg.FolderID,
		arg.Name,
		arg.SizeBytes,
		arg.MimeType,
		arg.ContentRef,
		now,
	)

	var file models.File
	err := row.Scan(
		&file.ID,
		&file.FolderID,
		&file.Name,
		&file.SizeBytes,
		&file.MimeType,
		&file.ContentRef,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateName
		}
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrParentNotFound
		}
		return nil, err
	}

	s.RecordEvent(ctx, "file_created", file)

	return &file, nil
}

func (s *PostgresStore) GetFilesByFolder(ctx context.Context, folderID *string) ([]models.File, error) {
	var query string
	var rows pgx.Rows
	var err error

	if folderID == nil {
		query = `SELECT id, folder_id, name, size_bytes, mime_type, content_ref, created_at, updated_at
				 FROM files
				 WHERE folder_id IS NULL
				 ORDER BY name`
		rows, err = s.pool.Query(ctx, query)
	} else {
		query = `SELECT id, folder_id, name, size_bytes, mime_type, content_ref, created_at, updated_at
				 FROM files
				 WHERE folder_id = $1
				 ORDER BY name`
		rows, err = s.pool.Query(ctx, query, *folderID)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		err := rows.Scan(
			&file.ID,
			&file.FolderID,
			&file.Name,
			&file.SizeBytes,
			&file.MimeType,
			&file.ContentRef,
			&file.CreatedAt,
			&file.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if files == nil {
		return []models.File{}, nil
	}

	return files, nil
}

func (s *PostgresStore) GetFileByID(ctx context.Context, id string) (*models.File, error) {
	query := `
		SELECT id, folder_id, name, size_bytes, mime_type, content_ref, created_at, updated_at
		FROM files
		WHERE id = $1
	`
	var file models.File

	err := s.pool.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.FolderID,
		&file.Name,
		&file.SizeBytes,
		&file.MimeType,
		&file.ContentRef,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &file, nil
}

func (s *PostgresStore) RenameFile(ctx context.Context, id string, newName string) (bool, error) {
	query := `
		UPDATE files
		SET name = $1, updated_at = $2
		WHERE id = $3
	`
	now := time.Now()
	res, err := s.pool.Exec(ctx, query, newName, now, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, ErrDuplicateName
		}
		return false, err
	}

	if res.RowsAffected() == 0 {
		return false, nil
	}

	s.RecordEvent(ctx, "file_renamed", map[string]string{"id": id, "name": newName})

	return true, nil
}

// DeleteFile usuwa rekord pliku i zwraca jego content_ref, żeby wołający
// mógł usunąć bloba. Zwraca nil, gdy plik nie istniał.
func (s *PostgresStore) DeleteFile(ctx context.Context, id string) (*string, error) {
	query := `DELETE FROM files WHERE id = $1 RETURNING content_ref`

	var contentRef string
	err := s.pool.QueryRow(ctx, query, id).Scan(&contentRef)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	s.RecordEvent(ctx, "file_deleted", map[string]string{"id": id})

	return &contentRef, nil
}
