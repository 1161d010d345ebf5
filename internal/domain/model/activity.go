package model

import "time"

type ActivityType string

const (
	ActivityEventCreated  ActivityType = "event_created"
	ActivityFileSubmitted ActivityType = "file_submitted"
	ActivityFileUpdated   ActivityType = "file_updated"
	ActivityOther         ActivityType = "other"
)

// ParseActivityType folds unrecognized tags into ActivityOther so that
// switches over the type can stay exhaustive.
func ParseActivityType(s string) ActivityType {
	switch t := ActivityType(s); t {
	case ActivityEventCreated, ActivityFileSubmitted, ActivityFileUpdated:
		return t
	default:
		return ActivityOther
	}
}

// Activity is an append-only audit trail entry. The description is rendered
// once at write time and never recomputed; eventId and submissionId are weak
// back-references used for display only.
type Activity struct {
	ID           int          `json:"id"`
	Type         ActivityType `json:"type"`
	Description  string       `json:"description"`
	EventID      *int         `json:"eventId"`
	SubmissionID *int         `json:"submissionId"`
	CreatedAt    time.Time    `json:"createdAt"`
}
