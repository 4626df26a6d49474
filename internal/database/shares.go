package database

import (
	"context"
	"errors"

	"serwer-dav/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrFileNotFound = errors.New("file not found")

func (s *PostgresStore) CreateShareLink(ctx context.Context, fileID string, token string) (*models.ShareLink, error) {
	query := `
		INSERT INTO share_links (file_id, token)
		VALUES ($1, $2)
		RETURNING id, file_id, token, created_at, expires_at
	`
	row := s.pool.QueryRow(ctx, query, fileID, token)

	var link models.ShareLink
	err := row.Scan(
		&link.ID,
		&link.FileID,
		&link.Token,
		&link.CreatedAt,
		&link.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	return &link, nil
}

// GetShareLinkByToken pomija linki, którym minął termin ważności.
func (s *PostgresStore) GetShareLinkByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	query := `
		SELECT id, file_id, token, created_at, expires_at
		FROM share_links
		WHERE token = $1 AND (expires_at IS NULL OR expires_at > now())
	`
	var link models.ShareLink

	err := s.pool.QueryRow(ctx, query, token).Scan(
		&link.ID,
		&link.FileID,
		&link.Token,
		&link.CreatedAt,
		&link.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &link, nil
}
