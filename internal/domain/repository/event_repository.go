package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"filedrop/internal/common"
	"filedrop/internal/domain/model"
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	FindEventByID(ctx context.Context, id int) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	UpdateEvent(ctx context.Context, event *model.Event) error
	CountActiveEvents(ctx context.Context) (int, error)
	ListActiveEventIDs(ctx context.Context) ([]int, error)
}

type pgEventRepository struct {
	db *sql.DB
}

func NewPgEventRepository(db *sql.DB) EventRepository {
	return &pgEventRepository{db: db}
}

// CreateEvent assigns the id and createdAt from the database defaults.
func (r *pgEventRepository) CreateEvent(ctx context.Context, e *model.Event) error {
	initialFiles, err := marshalFileList(e.InitialFiles)
	if err != nil {
		return fmt.Errorf("pgEventRepository.CreateEvent marshal: %w", err)
	}

	query := `INSERT INTO events (title, description, deadline, is_active, initial_files, initial_storage_path, submission_storage_path)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Deadline, e.IsActive, initialFiles, e.InitialStoragePath, e.SubmissionStoragePath,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgEventRepository.CreateEvent: %w", err)
	}
	return nil
}

func (r *pgEventRepository) FindEventByID(ctx context.Context, id int) (*model.Event, error) {
	query := `SELECT id, title, description, deadline, is_active, created_at, initial_files, initial_storage_path, submission_storage_path
	          FROM events WHERE id = $1`

	event := &model.Event{}
	var rawFiles *string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Title, &event.Description, &event.Deadline, &event.IsActive,
		&event.CreatedAt, &rawFiles, &event.InitialStoragePath, &event.SubmissionStoragePath,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgEventRepository.FindEventByID: %w", err)
	}
	if event.InitialFiles, err = unmarshalFileList(rawFiles); err != nil {
		return nil, fmt.Errorf("pgEventRepository.FindEventByID unmarshal: %w", err)
	}
	return event, nil
}

func (r *pgEventRepository) ListEvents(ctx context.Context) ([]model.Event, error) {
	query := `SELECT id, title, description, deadline, is_active, created_at, initial_files, initial_storage_path, submission_storage_path
	          FROM events ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListEvents query: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		var rawFiles *string
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Deadline, &e.IsActive,
			&e.CreatedAt, &rawFiles, &e.InitialStoragePath, &e.SubmissionStoragePath); err != nil {
			return nil, fmt.Errorf("pgEventRepository.ListEvents scan: %w", err)
		}
		if e.InitialFiles, err = unmarshalFileList(rawFiles); err != nil {
			return nil, fmt.Errorf("pgEventRepository.ListEvents unmarshal: %w", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListEvents rows.Err: %w", err)
	}
	return events, nil
}

// UpdateEvent writes the full row; the service layer merges partial updates
// before calling this. id and created_at never change.
func (r *pgEventRepository) UpdateEvent(ctx context.Context, e *model.Event) error {
	initialFiles, err := marshalFileList(e.InitialFiles)
	if err != nil {
		return fmt.Errorf("pgEventRepository.UpdateEvent marshal: %w", err)
	}

	query := `UPDATE events SET
	            title = $1, description = $2, deadline = $3, is_active = $4,
	            initial_files = $5, initial_storage_path = $6, submission_storage_path = $7
	          WHERE id = $8`

	res, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, e.Deadline, e.IsActive, initialFiles, e.InitialStoragePath, e.SubmissionStoragePath, e.ID,
	)
	if err != nil {
		return fmt.Errorf("pgEventRepository.UpdateEvent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgEventRepository.UpdateEvent rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgEventRepository) CountActiveEvents(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgEventRepository.CountActiveEvents: %w", err)
	}
	return count, nil
}

func (r *pgEventRepository) ListActiveEventIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM events WHERE is_active = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListActiveEventIDs query: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("pgEventRepository.ListActiveEventIDs scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListActiveEventIDs rows.Err: %w", err)
	}
	return ids, nil
}
