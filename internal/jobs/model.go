package jobs

import (
	"time"

	"token-analysis-backend/internal/schema"
)

// Status is a job's coarse-grained lifecycle stage.
type Status string

const (
	StatusReceived         Status = "received"
	StatusSavingFiles      Status = "saving_files"
	StatusLoadingDocuments Status = "loading_documents"
	StatusExtracting       Status = "extracting"
	StatusComplete         Status = "complete"
	StatusError            Status = "error"
	StatusUnknown          Status = "unknown"
)

// Job is one asynchronous analysis run. Complete and Error are terminal;
// Result is set only on Complete.
type Job struct {
	ID        string                `json:"id"`
	Status    Status                `json:"status"`
	Details   string                `json:"details"`
	Result    *schema.TokenAnalysis `json:"result,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// StatusView is the polled projection of a job. Result is present only when
// Status is complete.
type StatusView struct {
	JobID   string                `json:"jobId"`
	Status  Status                `json:"status"`
	Details string                `json:"details,omitempty"`
	Result  *schema.TokenAnalysis `json:"result,omitempty"`
}
