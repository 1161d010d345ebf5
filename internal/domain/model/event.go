package model

import "time"

// Event is an administrator-defined submission window. Events are never
// hard-deleted; isActive controls whether they accept submissions.
type Event struct {
	ID                    int       `json:"id"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	Deadline              time.Time `json:"deadline"`
	IsActive              bool      `json:"isActive"`
	CreatedAt             time.Time `json:"createdAt"`
	InitialFiles          []string  `json:"initialFiles"`
	InitialStoragePath    *string   `json:"initialStoragePath,omitempty"`
	SubmissionStoragePath *string   `json:"submissionStoragePath,omitempty"`
}

// EventWithStats annotates an event with its live submission count,
// computed at read time and never persisted.
type EventWithStats struct {
	Event
	SubmissionCount int `json:"submissionCount"`
}
