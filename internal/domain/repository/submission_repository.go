package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"filedrop/internal/common"
	"filedrop/internal/domain/model"
)

type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission *model.Submission) error
	FindSubmissionByID(ctx context.Context, id int) (*model.Submission, error)
	// ListSubmissions returns all submissions, or only those for one event
	// when eventID is non-nil, newest submittedAt first.
	ListSubmissions(ctx context.Context, eventID *int) ([]model.Submission, error)
	CountSubmissions(ctx context.Context) (int, error)
	CountSubmissionsByEventIDs(ctx context.Context, eventIDs []int) (int, error)
	CountSubmissionsPerEvent(ctx context.Context) (map[int]int, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) CreateSubmission(ctx context.Context, s *model.Submission) error {
	files := s.Files
	if files == nil {
		files = []string{}
	}
	rawFiles, err := marshalFileList(files)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.CreateSubmission marshal: %w", err)
	}

	query := `INSERT INTO submissions (event_id, submitter_name, submitter_department, submitter_contact, files)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, submitted_at`

	err = r.db.QueryRowContext(ctx, query,
		s.EventID, s.SubmitterName, s.SubmitterDepartment, s.SubmitterContact, rawFiles,
	).Scan(&s.ID, &s.SubmittedAt)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.CreateSubmission: %w", err)
	}
	s.Files = files
	return nil
}

func (r *pgSubmissionRepository) FindSubmissionByID(ctx context.Context, id int) (*model.Submission, error) {
	query := `SELECT id, event_id, submitter_name, submitter_department, submitter_contact, files, submitted_at
	          FROM submissions WHERE id = $1`

	sub := &model.Submission{}
	var rawFiles *string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sub.ID, &sub.EventID, &sub.SubmitterName, &sub.SubmitterDepartment, &sub.SubmitterContact, &rawFiles, &sub.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindSubmissionByID: %w", err)
	}
	if sub.Files, err = unmarshalFileList(rawFiles); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.FindSubmissionByID unmarshal: %w", err)
	}
	if sub.Files == nil {
		sub.Files = []string{}
	}
	return sub, nil
}

func (r *pgSubmissionRepository) ListSubmissions(ctx context.Context, eventID *int) ([]model.Submission, error) {
	query := `SELECT id, event_id, submitter_name, submitter_department, submitter_contact, files, submitted_at
	          FROM submissions`
	var args []interface{}
	if eventID != nil {
		query += ` WHERE event_id = $1`
		args = append(args, *eventID)
	}
	query += ` ORDER BY submitted_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListSubmissions query: %w", err)
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		var s model.Submission
		var rawFiles *string
		if err := rows.Scan(&s.ID, &s.EventID, &s.SubmitterName, &s.SubmitterDepartment,
			&s.SubmitterContact, &rawFiles, &s.SubmittedAt); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListSubmissions scan: %w", err)
		}
		if s.Files, err = unmarshalFileList(rawFiles); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListSubmissions unmarshal: %w", err)
		}
		if s.Files == nil {
			s.Files = []string{}
		}
		submissions = append(submissions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListSubmissions rows.Err: %w", err)
	}
	return submissions, nil
}

func (r *pgSubmissionRepository) CountSubmissions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgSubmissionRepository.CountSubmissions: %w", err)
	}
	return count, nil
}

func (r *pgSubmissionRepository) CountSubmissionsByEventIDs(ctx context.Context, eventIDs []int) (int, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(eventIDs))
	args := make([]interface{}, len(eventIDs))
	for i, id := range eventIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM submissions WHERE event_id IN (%s)`, strings.Join(placeholders, ","))

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgSubmissionRepository.CountSubmissionsByEventIDs: %w", err)
	}
	return count, nil
}

func (r *pgSubmissionRepository) CountSubmissionsPerEvent(ctx context.Context) (map[int]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT event_id, COUNT(*) FROM submissions GROUP BY event_id`)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.CountSubmissionsPerEvent query: %w", err)
	}
	defer rows.Close()

	counts := map[int]int{}
	for rows.Next() {
		var eventID, count int
		if err := rows.Scan(&eventID, &count); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.CountSubmissionsPerEvent scan: %w", err)
		}
		counts[eventID] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.CountSubmissionsPerEvent rows.Err: %w", err)
	}
	return counts, nil
}
