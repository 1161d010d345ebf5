package service

import (
	"context"

	"filedrop/internal/common"
	"filedrop/internal/domain/model"
	"filedrop/internal/domain/repository"
)

// The recent-activity feed defaults to the ten newest entries.
const defaultFeedLimit = 10

type ActivityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// Record appends one audit trail entry. Callers treat a failure here as
// advisory: the primary entity stays persisted either way.
func (s *ActivityService) Record(ctx context.Context, typ model.ActivityType, description string, eventID, submissionID *int) error {
	activity := &model.Activity{
		Type:         typ,
		Description:  description,
		EventID:      eventID,
		SubmissionID: submissionID,
	}
	if err := s.activityRepo.CreateActivity(ctx, activity); err != nil {
		return common.Errorf("failed to record activity: %w", err)
	}
	return nil
}

func (s *ActivityService) Recent(ctx context.Context, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	activities, err := s.activityRepo.ListActivities(ctx, limit)
	if err != nil {
		return nil, common.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
