package ports

import (
	"context"

	"github.com/hirepipe/ats/internal/core/domain"
)

// CandidateRepository defines persistence operations for candidates.
type CandidateRepository interface {
	// ListByJob returns the job's candidates ordered by creation time, with
	// RecruiterUsername resolved (domain.UnknownRecruiter when missing).
	ListByJob(ctx context.Context, jobID int64) ([]domain.Candidate, error)
	FindByID(ctx context.Context, id int64) (*domain.Candidate, error)
	// Create inserts the candidate. A (job, email) pair that already exists,
	// compared case-insensitively, surfaces as domain.ErrDuplicateCandidate.
	Create(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error)
	UpdateStage(ctx context.Context, id int64, stage domain.Stage) (*domain.Candidate, error)
	ExistsByJobAndEmail(ctx context.Context, jobID int64, email string) (bool, error)
}

// DataStore covers store-wide maintenance operations.
type DataStore interface {
	// Clear deletes every candidate, then every job, then every user.
	Clear(ctx context.Context) error
}
