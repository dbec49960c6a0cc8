package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

type CandidateService struct {
	candidates ports.CandidateRepository
	jobs       ports.JobRepository
	events     ports.StageEventRepository
	log        zerolog.Logger
	now        func() time.Time
}

// NewCandidateService wires the candidate use cases. A nil events repository
// disables the stage audit trail.
func NewCandidateService(
	candidates ports.CandidateRepository,
	jobs ports.JobRepository,
	events ports.StageEventRepository,
	log zerolog.Logger,
) *CandidateService {
	if events == nil {
		events = noopStageEvents{}
	}
	return &CandidateService{candidates: candidates, jobs: jobs, events: events, log: log, now: time.Now}
}

// ListCandidates returns an empty list for jobs that do not exist.
func (s *CandidateService) ListCandidates(ctx context.Context, jobID int64) ([]domain.Candidate, error) {
	return s.candidates.ListByJob(ctx, jobID)
}

func (s *CandidateService) CreateCandidate(ctx context.Context, in ports.CreateCandidateInput) (*domain.Candidate, error) {
	stage := in.Stage
	if stage == "" {
		stage = domain.StageSubmitted
	}
	if !stage.Valid() {
		return nil, invalidStage()
	}

	if _, err := s.jobs.FindByID(ctx, in.JobID); err != nil {
		return nil, err
	}

	// Advisory only; the (job_id, email_key) unique index is authoritative.
	exists, err := s.candidates.ExistsByJobAndEmail(ctx, in.JobID, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateCandidate
	}

	c := &domain.Candidate{
		JobID:       in.JobID,
		RecruiterID: in.RecruiterID,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		ResumeURL:   in.ResumeURL,
		Stage:       stage,
		CreatedAt:   s.now().UTC(),
	}
	if in.Notes != "" {
		notes := in.Notes
		c.Notes = &notes
	}

	created, err := s.candidates.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("candidate_id", created.ID).
		Int64("job_id", created.JobID).
		Int64("recruiter_id", created.RecruiterID).
		Msg("candidate submitted")
	return created, nil
}

// UpdateStage moves a candidate to any of the six stages; every stage is
// reachable from every other. The audit record is best effort.
func (s *CandidateService) UpdateStage(ctx context.Context, in ports.UpdateStageInput) (*domain.Candidate, error) {
	if !in.Stage.Valid() {
		return nil, invalidStage()
	}

	current, err := s.candidates.FindByID(ctx, in.CandidateID)
	if err != nil {
		return nil, err
	}

	updated, err := s.candidates.UpdateStage(ctx, in.CandidateID, in.Stage)
	if err != nil {
		return nil, err
	}
	updated.RecruiterUsername = current.RecruiterUsername

	event := &domain.StageEvent{
		CandidateID: updated.ID,
		JobID:       updated.JobID,
		From:        current.Stage,
		To:          updated.Stage,
		ActorID:     in.Actor.ID,
		Actor:       in.Actor.Username,
		At:          s.now().UTC(),
	}
	if err := s.events.Record(ctx, event); err != nil {
		s.log.Warn().Err(err).Int64("candidate_id", updated.ID).Msg("failed to record stage event")
	}

	s.log.Info().
		Int64("candidate_id", updated.ID).
		Str("from", string(current.Stage)).
		Str("to", string(updated.Stage)).
		Int64("actor_id", in.Actor.ID).
		Msg("candidate stage updated")
	return updated, nil
}

func (s *CandidateService) StageHistory(ctx context.Context, candidateID int64) ([]domain.StageEvent, error) {
	if _, err := s.candidates.FindByID(ctx, candidateID); err != nil {
		return nil, err
	}
	return s.events.ListByCandidate(ctx, candidateID)
}

func invalidStage() error {
	return domain.NewValidationError("stage", fmt.Sprintf("stage must be one of [%s]", strings.Join(domain.StageNames(), ", ")))
}

type noopStageEvents struct{}

func (noopStageEvents) Record(context.Context, *domain.StageEvent) error { return nil }

func (noopStageEvents) ListByCandidate(context.Context, int64) ([]domain.StageEvent, error) {
	return []domain.StageEvent{}, nil
}

func (noopStageEvents) Clear(context.Context) error { return nil }
