package jobs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"token-analysis-backend/internal/docload"
	"token-analysis-backend/internal/schema"
	"token-analysis-backend/internal/shared/metrics"
	"token-analysis-backend/internal/shared/storage/uploads"
	"token-analysis-backend/internal/shared/telemetry"
)

// ErrNoInput is returned when a submission carries no files and no URLs.
// Submission errors are rejected synchronously, before a job id exists.
var ErrNoInput = errors.New("no files or URL provided")

// Upload is one submitted file, captured in memory before the request ends.
type Upload struct {
	FileName string
	Data     []byte
}

// SubmitRequest carries everything needed to start one analysis job.
type SubmitRequest struct {
	Files    []Upload
	URLs     []string
	Identity schema.TokenIdentity
}

// AnalysisRunner runs the full extraction pipeline over loaded documents.
type AnalysisRunner interface {
	Run(ctx context.Context, documents []docload.Document, identity schema.TokenIdentity) schema.TokenAnalysis
}

// DocumentLoader loads raw sources into documents, skipping bad ones.
type DocumentLoader func(ctx context.Context, filePaths []string, urls []string) []docload.Document

// Service tracks analysis jobs and runs each one as an independent
// background unit of work. A job runs to completion or error; there is no
// cancellation and no retry.
type Service struct {
	Store   *MemoryStore
	Uploads *uploads.Store
	Runner  AnalysisRunner

	// Load defaults to docload.Load; tests substitute it.
	Load DocumentLoader
}

// Submit validates the request, issues a fresh job id, and starts the
// background run. Ids are never reused; resubmission means a new id.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	if len(req.Files) == 0 && len(req.URLs) == 0 {
		return "", ErrNoInput
	}

	jobID := uuid.NewString()
	job := Job{
		ID:      jobID,
		Status:  StatusReceived,
		Details: "Analysis request received.",
	}
	if err := s.Store.Create(ctx, job); err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}

	telemetry.Info("job.submitted", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"job_id":     jobID,
		"files":      len(req.Files),
		"urls":       len(req.URLs),
	})
	metrics.IncJobStarted()

	go s.run(backgroundWithRequestID(ctx), jobID, req)

	return jobID, nil
}

// Poll returns the current status view for a job id. An id never issued
// yields the unknown sentinel rather than an error.
func (s *Service) Poll(ctx context.Context, jobID string) StatusView {
	job, err := s.Store.Get(ctx, jobID)
	if err != nil {
		return StatusView{
			JobID:   jobID,
			Status:  StatusUnknown,
			Details: "Unknown job_id",
		}
	}
	view := StatusView{
		JobID:   job.ID,
		Status:  job.Status,
		Details: job.Details,
	}
	if job.Status == StatusComplete {
		view.Result = job.Result
	}
	return view
}

// run executes one job through its stages. Any panic or pipeline-fatal
// condition is caught here, once, and recorded as a terminal error status.
func (s *Service) run(ctx context.Context, jobID string, req SubmitRequest) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.fail(ctx, jobID, fmt.Sprintf("unexpected error: %v", r))
		}
	}()

	s.setStatus(ctx, jobID, StatusSavingFiles, "Saving uploaded files.")
	filePaths, err := s.saveFiles(ctx, jobID, req.Files)
	// Files are transient: remove them once loading is done, on every path.
	defer func() {
		if cleanupErr := s.Uploads.RemoveJob(jobID); cleanupErr != nil {
			telemetry.Error("job.cleanup_failed", map[string]any{
				"job_id": jobID,
				"error":  cleanupErr.Error(),
			})
		}
	}()
	if err != nil {
		s.fail(ctx, jobID, fmt.Sprintf("saving files: %v", err))
		return
	}

	s.setStatus(ctx, jobID, StatusLoadingDocuments, "Loading documents.")
	load := s.Load
	if load == nil {
		load = docload.Load
	}
	documents := load(ctx, filePaths, req.URLs)
	if len(documents) == 0 {
		s.fail(ctx, jobID, "no documents loaded")
		return
	}

	s.setStatus(ctx, jobID, StatusExtracting, "Extracting token information.")
	result := s.Runner.Run(ctx, documents, req.Identity)

	if err := s.Store.Complete(ctx, jobID, &result); err != nil {
		telemetry.Error("job.complete_update_failed", map[string]any{
			"job_id": jobID,
			"error":  err.Error(),
		})
		return
	}
	metrics.IncJobCompleted()
	metrics.ObserveJobDurationMs(float64(time.Since(started).Milliseconds()))
	telemetry.Info("job.status", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"job_id":     jobID,
		"status":     StatusComplete,
	})
}

func (s *Service) saveFiles(ctx context.Context, jobID string, files []Upload) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		path, size, mimeType, err := s.Uploads.Save(ctx, jobID, f.FileName, bytes.NewReader(f.Data))
		if err != nil {
			return nil, fmt.Errorf("save %s: %w", f.FileName, err)
		}
		telemetry.Info("job.file_saved", map[string]any{
			"job_id":    jobID,
			"file_name": f.FileName,
			"bytes":     size,
			"mime_type": mimeType,
		})
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *Service) setStatus(ctx context.Context, jobID string, status Status, details string) {
	if err := s.Store.SetStatus(ctx, jobID, status, details); err != nil {
		telemetry.Error("job.status_update_failed", map[string]any{
			"job_id": jobID,
			"status": status,
			"error":  err.Error(),
		})
		return
	}
	telemetry.Info("job.status", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"job_id":     jobID,
		"status":     status,
	})
}

func (s *Service) fail(ctx context.Context, jobID string, details string) {
	metrics.IncJobFailed()
	if err := s.Store.Fail(ctx, jobID, details); err != nil {
		telemetry.Error("job.fail_update_failed", map[string]any{
			"job_id": jobID,
			"error":  err.Error(),
		})
		return
	}
	telemetry.Error("job.failed", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"job_id":     jobID,
		"details":    details,
	})
}
