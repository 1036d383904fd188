package model

import "time"

// RunStatus is the lifecycle state of a recorded formatting run.
type RunStatus string

const (
	// RunStatusPending marks a run that was recorded but has not finished;
	// a run that crashes mid-way stays pending instead of reading as done.
	RunStatusPending     RunStatus = "pending"
	RunStatusComplete    RunStatus = "complete"
	RunStatusFailed      RunStatus = "failed"
	RunStatusNeedsChoice RunStatus = "needs_choice"
)

// RunRecord is the audit entry persisted per formatting run.
type RunRecord struct {
	ID         string    `json:"id"`
	SourceFile string    `json:"source_file"`
	Status     RunStatus `json:"status"`
	Stats      Stats     `json:"stats"`
	Errors     int       `json:"errors"`
	Warnings   int       `json:"warnings"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
