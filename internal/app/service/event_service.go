package service

import (
	"context"
	"fmt"
	"time"

	"filedrop/internal/common"
	"filedrop/internal/domain/model"
	"filedrop/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type EventService struct {
	eventRepo      repository.EventRepository
	submissionRepo repository.SubmissionRepository
	activities     *ActivityService
}

func NewEventService(
	eventRepo repository.EventRepository,
	submissionRepo repository.SubmissionRepository,
	activities *ActivityService,
) *EventService {
	return &EventService{
		eventRepo:      eventRepo,
		submissionRepo: submissionRepo,
		activities:     activities,
	}
}

type CreateEventRequest struct {
	Title                 string
	Description           string
	Deadline              time.Time
	IsActive              *bool // nil defaults to true
	InitialFiles          []string
	InitialStoragePath    *string
	SubmissionStoragePath *string
}

type UpdateEventRequest struct {
	Title                 *string    `json:"title"`
	Description           *string    `json:"description"`
	Deadline              *time.Time `json:"deadline"`
	IsActive              *bool      `json:"isActive"`
	InitialFiles          *[]string  `json:"initialFiles"`
	InitialStoragePath    *string    `json:"initialStoragePath"`
	SubmissionStoragePath *string    `json:"submissionStoragePath"`
}

func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*model.Event, error) {
	if req.Title == "" {
		return nil, common.Errorf("title is required: %w", common.ErrValidation)
	}
	if req.Description == "" {
		return nil, common.Errorf("description is required: %w", common.ErrValidation)
	}
	if req.Deadline.IsZero() {
		return nil, common.Errorf("deadline is required: %w", common.ErrValidation)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	event := &model.Event{
		Title:                 req.Title,
		Description:           req.Description,
		Deadline:              req.Deadline,
		IsActive:              isActive,
		InitialFiles:          req.InitialFiles,
		InitialStoragePath:    req.InitialStoragePath,
		SubmissionStoragePath: req.SubmissionStoragePath,
	}
	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, common.Errorf("failed to create event: %w", err)
	}

	// Best-effort audit trail entry, written outside any transaction.
	description := fmt.Sprintf("New event %q was created.", event.Title)
	if err := s.activities.Record(ctx, model.ActivityEventCreated, description, &event.ID, nil); err != nil {
		logrus.WithError(err).WithField("event_id", event.ID).Warn("activity entry skipped")
	}

	logrus.WithFields(logrus.Fields{"event_id": event.ID, "title": event.Title}).Info("event created")
	return event, nil
}

func (s *EventService) Get(ctx context.Context, id int) (*model.Event, error) {
	return s.eventRepo.FindEventByID(ctx, id)
}

// List returns all events newest first, each annotated with its live
// submission count.
func (s *EventService) List(ctx context.Context) ([]model.EventWithStats, error) {
	events, err := s.eventRepo.ListEvents(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list events: %w", err)
	}
	counts, err := s.submissionRepo.CountSubmissionsPerEvent(ctx)
	if err != nil {
		return nil, common.Errorf("failed to count submissions: %w", err)
	}

	withStats := make([]model.EventWithStats, 0, len(events))
	for _, e := range events {
		withStats = append(withStats, model.EventWithStats{Event: e, SubmissionCount: counts[e.ID]})
	}
	return withStats, nil
}

// Update merges only the supplied fields into the stored event.
func (s *EventService) Update(ctx context.Context, id int, req UpdateEventRequest) (*model.Event, error) {
	event, err := s.eventRepo.FindEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Deadline != nil {
		event.Deadline = *req.Deadline
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}
	if req.InitialFiles != nil {
		event.InitialFiles = *req.InitialFiles
	}
	if req.InitialStoragePath != nil {
		event.InitialStoragePath = req.InitialStoragePath
	}
	if req.SubmissionStoragePath != nil {
		event.SubmissionStoragePath = req.SubmissionStoragePath
	}

	if err := s.eventRepo.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
