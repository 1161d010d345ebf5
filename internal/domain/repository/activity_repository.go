package repository

import (
	"context"
	"database/sql"
	"fmt"

	"filedrop/internal/domain/model"
)

type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity *model.Activity) error
	// ListActivities returns the newest activities first, truncated to limit.
	ListActivities(ctx context.Context, limit int) ([]model.Activity, error)
}

type pgActivityRepository struct {
	db *sql.DB
}

func NewPgActivityRepository(db *sql.DB) ActivityRepository {
	return &pgActivityRepository{db: db}
}

func (r *pgActivityRepository) CreateActivity(ctx context.Context, a *model.Activity) error {
	query := `INSERT INTO activities (type, description, event_id, submission_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		string(a.Type), a.Description, a.EventID, a.SubmissionID,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgActivityRepository.CreateActivity: %w", err)
	}
	return nil
}

func (r *pgActivityRepository) ListActivities(ctx context.Context, limit int) ([]model.Activity, error) {
	query := `SELECT id, type, description, event_id, submission_id, created_at
	          FROM activities ORDER BY created_at DESC, id DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("pgActivityRepository.ListActivities query: %w", err)
	}
	defer rows.Close()

	activities := []model.Activity{}
	for rows.Next() {
		var a model.Activity
		var rawType string
		if err := rows.Scan(&a.ID, &rawType, &a.Description, &a.EventID, &a.SubmissionID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgActivityRepository.ListActivities scan: %w", err)
		}
		a.Type = model.ParseActivityType(rawType)
		activities = append(activities, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgActivityRepository.ListActivities rows.Err: %w", err)
	}
	return activities, nil
}
