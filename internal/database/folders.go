package database

import (
	"context"
	"errors"
	"time"

	"serwer-dav/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrDuplicateName = errors.New("an entry with the same name already exists in this folder")
var ErrParentNotFound = errors.New("parent folder does not exist")

type CreateFolderParams struct {
	ID       string
	Name     string
	ParentID *string
}

func (s *PostgresStore) CreateFolder(ctx context.Context, arg CreateFolderParams) (*models.Folder, error) {
	query := `
		INSERT INTO folders (id, parent_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, parent_id, name, created_at, updated_at
	`
	now := time.Now()

	row := s.pool.QueryRow(ctx, query, arg.ID, arg.ParentID, arg.Name, now)

	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.ParentID,
		&folder.Name,
		&folder.CreatedAt,
		&folder.UpdatedAt,
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

	s.RecordEvent(ctx, "folder_created", folder)

	return &folder, nil
}

func (s *PostgresStore) GetFoldersByParent(ctx context.Context, parentID *string) ([]models.Folder, error) {
	var query string
	var rows pgx.Rows
	var err error

	if parentID == nil {
		query = `SELECT id, parent_id, name, created_at, updated_at
				 FROM folders
				 WHERE parent_id IS NULL
				 ORDER BY name`
		rows, err = s.pool.Query(ctx, query)
	} else {
		query = `SELECT id, parent_id, name, created_at, updated_at
				 FROM folders
				 WHERE parent_id = $1
				 ORDER BY name`
		rows, err = s.pool.Query(ctx, query, *parentID)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.ParentID,
			&folder.Name,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if folders == nil {
		return []models.Folder{}, nil
	}

	return folders, nil
}

func (s *PostgresStore) GetFolderByID(ctx context.Context, id string) (*models.Folder, error) {
	query := `
		SELECT id, parent_id, name, created_at, updated_at
		FROM folders
		WHERE id = $1
	`
	var folder models.Folder

	err := s.pool.QueryRow(ctx, query, id).Scan(
		&folder.ID,
		&folder.ParentID,
		&folder.Name,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &folder, nil
}

func (s *PostgresStore) FolderExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM folders WHERE id = $1)"
	err := s.pool.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresStore) RenameFolder(ctx context.Context, id string, newName string) (bool, error) {
	query := `
		UPDATE folders
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

	s.RecordEvent(ctx, "folder_renamed", map[string]string{"id": id, "name": newName})

	return true, nil
}

// DeleteFolderTree usuwa folder wraz z całym poddrzewem (kaskada w bazie)
// i zwraca content_ref wszystkich plików, które przy tym zniknęły, żeby
// wołający mógł posprzątać bloby.
func (s *PostgresStore) DeleteFolderTree(ctx context.Context, id string) ([]string, bool, error) {
	var contentRefs []string
	var deleted bool

	err := s.ExecTx(ctx, func(q *Queries) error {
		query := `
			WITH RECURSIVE subtree AS (
				SELECT f.id
				FROM folders f
				WHERE f.id = $1

				UNION ALL

				SELECT f.id
				FROM folders f
				INNER JOIN subtree s ON f.parent_id = s.id
			)
			SELECT fi.content_ref
			FROM files fi
			WHERE fi.folder_id IN (SELECT id FROM subtree)
		`
		rows, err := q.db.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var ref string
			if err := rows.Scan(&ref); err != nil {
				return err
			}
			contentRefs = append(contentRefs, ref)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		res, err := q.db.Exec(ctx, `DELETE FROM folders WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = res.RowsAffected() > 0

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if deleted {
		s.RecordEvent(ctx, "folder_deleted", map[string]string{"id": id})
	}

	return contentRefs, deleted, nil
}
