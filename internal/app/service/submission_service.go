package service

import (
	"context"
	"fmt"

	"filedrop/internal/common"
	"filedrop/internal/domain/model"
	"filedrop/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	eventRepo      repository.EventRepository
	activities     *ActivityService
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	eventRepo repository.EventRepository,
	activities *ActivityService,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		eventRepo:      eventRepo,
		activities:     activities,
	}
}

type CreateSubmissionRequest struct {
	EventID             int
	SubmitterName       string
	SubmitterDepartment string
	SubmitterContact    *string
	Files               []string
}

// Create rejects submissions against unknown events up front, so the audit
// trail never carries a placeholder event title.
func (s *SubmissionService) Create(ctx context.Context, req CreateSubmissionRequest) (*model.Submission, error) {
	if req.SubmitterName == "" {
		return nil, common.Errorf("submitterName is required: %w", common.ErrValidation)
	}
	if req.SubmitterDepartment == "" {
		return nil, common.Errorf("submitterDepartment is required: %w", common.ErrValidation)
	}

	event, err := s.eventRepo.FindEventByID(ctx, req.EventID)
	if err != nil {
		return nil, common.Errorf("event not found: %w", err)
	}

	files := req.Files
	if files == nil {
		files = []string{}
	}
	submission := &model.Submission{
		EventID:             event.ID,
		SubmitterName:       req.SubmitterName,
		SubmitterDepartment: req.SubmitterDepartment,
		SubmitterContact:    req.SubmitterContact,
		Files:               files,
	}
	if err := s.submissionRepo.CreateSubmission(ctx, submission); err != nil {
		return nil, common.Errorf("failed to create submission: %w", err)
	}

	description := fmt.Sprintf("%s submitted files to %q.", submission.SubmitterName, event.Title)
	if err := s.activities.Record(ctx, model.ActivityFileSubmitted, description, &submission.EventID, &submission.ID); err != nil {
		logrus.WithError(err).WithField("submission_id", submission.ID).Warn("activity entry skipped")
	}

	logrus.WithFields(logrus.Fields{
		"submission_id": submission.ID,
		"event_id":      submission.EventID,
		"files":         len(submission.Files),
	}).Info("submission created")
	return submission, nil
}

func (s *SubmissionService) Get(ctx context.Context, id int) (*model.Submission, error) {
	return s.submissionRepo.FindSubmissionByID(ctx, id)
}

func (s *SubmissionService) List(ctx context.Context, eventID *int) ([]model.Submission, error) {
	submissions, err := s.submissionRepo.ListSubmissions(ctx, eventID)
	if err != nil {
		return nil, common.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}
