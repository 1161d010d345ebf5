package model

import "time"

// Submission is one contributor's file delivery against an event.
// Submissions are created once and never updated or deleted.
type Submission struct {
	ID                  int       `json:"id"`
	EventID             int       `json:"eventId"`
	SubmitterName       string    `json:"submitterName"`
	SubmitterDepartment string    `json:"submitterDepartment"`
	SubmitterContact    *string   `json:"submitterContact"`
	Files               []string  `json:"files"`
	SubmittedAt         time.Time `json:"submittedAt"`
}
