package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"filedrop/internal/common"
	"filedrop/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type FileRepository interface {
	SaveFile(ctx context.Context, file *model.StoredFile) error
	FindFileByName(ctx context.Context, filename string) (*model.StoredFile, error)
}

type pgFileRepository struct {
	db *sql.DB
}

func NewPgFileRepository(db *sql.DB) FileRepository {
	return &pgFileRepository{db: db}
}

func (r *pgFileRepository) SaveFile(ctx context.Context, f *model.StoredFile) error {
	query := `INSERT INTO files (filename, original_name, mime_type, size, data)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		f.Filename, f.OriginalName, f.MimeType, f.Size, f.Data,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for filename
			return fmt.Errorf("storage name %q already taken: %w", f.Filename, common.ErrConflict)
		}
		return fmt.Errorf("pgFileRepository.SaveFile: %w", err)
	}
	return nil
}

func (r *pgFileRepository) FindFileByName(ctx context.Context, filename string) (*model.StoredFile, error) {
	query := `SELECT id, filename, original_name, mime_type, size, data, created_at
	          FROM files WHERE filename = $1`

	f := &model.StoredFile{}
	err := r.db.QueryRowContext(ctx, query, filename).Scan(
		&f.ID, &f.Filename, &f.OriginalName, &f.MimeType, &f.Size, &f.Data, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgFileRepository.FindFileByName: %w", err)
	}
	return f, nil
}
