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

const exportSheet = "Candidates"

var exportHeader = []string{
	"id", "jobId", "recruiterId", "name", "email", "phone",
	"resumeUrl", "stage", "notes", "createdAt", "recruiterUsername",
}

type JobService struct {
	jobs       ports.JobRepository
	candidates ports.CandidateRepository
	encoder    ports.SpreadsheetEncoder
	log        zerolog.Logger
}

func NewJobService(
	jobs ports.JobRepository,
	candidates ports.CandidateRepository,
	encoder ports.SpreadsheetEncoder,
	log zerolog.Logger,
) *JobService {
	return &JobService{jobs: jobs, candidates: candidates, encoder: encoder, log: log}
}

func (s *JobService) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.List(ctx)
}

func (s *JobService) CreateJob(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	required := []struct{ field, value string }{
		{"title", in.Title},
		{"description", in.Description},
		{"requirements", in.Requirements},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, domain.NewValidationError(r.field, r.field+" is required")
		}
	}

	job, err := s.jobs.Create(ctx, &domain.Job{
		Title:        in.Title,
		Description:  in.Description,
		Requirements: in.Requirements,
		ManagerID:    in.ManagerID,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	s.log.Info().Int64("job_id", job.ID).Int64("manager_id", job.ManagerID).Msg("job created")
	return job, nil
}

// ExportCandidates builds one spreadsheet row per candidate in list order.
func (s *JobService) ExportCandidates(ctx context.Context, jobID int64) (*ports.ExportFile, error) {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	candidates, err := s.candidates.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	table := ports.Table{Sheet: exportSheet, Header: exportHeader, Rows: make([][]any, 0, len(candidates))}
	for _, c := range candidates {
		table.Rows = append(table.Rows, exportRow(c))
	}

	data, err := s.encoder.Encode(table)
	if err != nil {
		return nil, fmt.Errorf("export job %d: %w", jobID, err)
	}

	s.log.Info().Int64("job_id", jobID).Int("rows", len(candidates)).Msg("candidates exported")
	return &ports.ExportFile{
		Filename:    fmt.Sprintf("candidates-%d.%s", jobID, s.encoder.Extension()),
		ContentType: s.encoder.ContentType(),
		Data:        data,
		Rows:        len(candidates),
	}, nil
}

func exportRow(c domain.Candidate) []any {
	notes := ""
	if c.Notes != nil {
		notes = *c.Notes
	}
	return []any{
		c.ID, c.JobID, c.RecruiterID, c.Name, c.Email, c.Phone,
		c.ResumeURL, string(c.Stage), notes, c.CreatedAt.UTC().Format(time.RFC3339), c.RecruiterUsername,
	}
}
