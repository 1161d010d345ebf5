package service

import (
	"context"
	"fmt"
	"math"

	"filedrop/internal/common"
	"filedrop/internal/domain/model"
	"filedrop/internal/domain/repository"
)

// Each active event is assumed to expect this many submissions. A deliberate
// simplification, not a tunable.
const expectedSubmissionsPerEvent = 15

type DashboardService struct {
	eventRepo      repository.EventRepository
	submissionRepo repository.SubmissionRepository
}

func NewDashboardService(
	eventRepo repository.EventRepository,
	submissionRepo repository.SubmissionRepository,
) *DashboardService {
	return &DashboardService{eventRepo: eventRepo, submissionRepo: submissionRepo}
}

// Stats recomputes the dashboard counters from current store state on every
// call; nothing here is cached or persisted.
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	activeEvents, err := s.eventRepo.CountActiveEvents(ctx)
	if err != nil {
		return nil, common.Errorf("failed to count active events: %w", err)
	}
	totalSubmissions, err := s.submissionRepo.CountSubmissions(ctx)
	if err != nil {
		return nil, common.Errorf("failed to count submissions: %w", err)
	}
	activeIDs, err := s.eventRepo.ListActiveEventIDs(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list active events: %w", err)
	}
	submissionsForActive, err := s.submissionRepo.CountSubmissionsByEventIDs(ctx, activeIDs)
	if err != nil {
		return nil, common.Errorf("failed to count active submissions: %w", err)
	}

	expected := activeEvents * expectedSubmissionsPerEvent
	completionRate := 0
	if expected > 0 {
		completionRate = int(math.Round(float64(submissionsForActive) / float64(expected) * 100))
	}
	pending := expected - submissionsForActive
	if pending < 0 {
		pending = 0
	}

	return &model.DashboardStats{
		ActiveEvents:       activeEvents,
		TotalSubmissions:   totalSubmissions,
		PendingSubmissions: pending,
		CompletionRate:     fmt.Sprintf("%d%%", completionRate),
	}, nil
}
