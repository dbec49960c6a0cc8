package ports

import (
	"context"

	"github.com/hirepipe/ats/internal/core/domain"
)

// CreateCandidateInput is the DTO passed from the transport layer to CandidateService.
type CreateCandidateInput struct {
	JobID       int64
	RecruiterID int64
	Name        string
	Email       string
	Phone       string
	ResumeURL   string
	Stage       domain.Stage // optional, defaults to Submitted
	Notes       string       // optional
}

// UpdateStageInput moves one candidate to a new stage on behalf of Actor.
type UpdateStageInput struct {
	CandidateID int64
	Stage       domain.Stage
	Actor       domain.Identity
}

// CandidateService defines use-case operations for candidates.
type CandidateService interface {
	ListCandidates(ctx context.Context, jobID int64) ([]domain.Candidate, error)
	CreateCandidate(ctx context.Context, in CreateCandidateInput) (*domain.Candidate, error)
	UpdateStage(ctx context.Context, in UpdateStageInput) (*domain.Candidate, error)
	StageHistory(ctx context.Context, candidateID int64) ([]domain.StageEvent, error)
}
