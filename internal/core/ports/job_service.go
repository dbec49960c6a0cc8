package ports

import (
	"context"

	"github.com/hirepipe/ats/internal/core/domain"
)

// CreateJobInput carries all data needed to post a job.
type CreateJobInput struct {
	Title        string
	Description  string
	Requirements string
	ManagerID    int64
}

// ExportFile is a downloadable document produced by an export.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}

// JobService defines use-case operations for jobs.
type JobService interface {
	ListJobs(ctx context.Context) ([]domain.Job, error)
	CreateJob(ctx context.Context, in CreateJobInput) (*domain.Job, error)
	// ExportCandidates renders the job's candidates as a spreadsheet.
	// Returns domain.ErrJobNotFound for unknown jobs.
	ExportCandidates(ctx context.Context, jobID int64) (*ExportFile, error)
}

// ResetService wipes all stored data.
type ResetService interface {
	Reset(ctx context.Context, actor domain.Identity) error
}
