package models

// ResetCounts reports how many rows each table lost during an admin reset.
type ResetCounts struct {
	EmailLogs         int64 `json:"email_logs"`
	Reports           int64 `json:"reports"`
	Assignments       int64 `json:"assignments"`
	AssignmentHistory int64 `json:"assignment_history"`
	Questions         int64 `json:"questions"`
	BadanPublik       int64 `json:"badan_publik"`
	Users             int64 `json:"users"`
}
