package model

// DashboardStats are aggregate counters recomputed from current store state
// on every read. CompletionRate is pre-formatted as "<int>%".
type DashboardStats struct {
	ActiveEvents       int    `json:"activeEvents"`
	TotalSubmissions   int    `json:"totalSubmissions"`
	PendingSubmissions int    `json:"pendingSubmissions"`
	CompletionRate     string `json:"completionRate"`
}
