package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

// CandidateRepository implements ports.CandidateRepository.
type CandidateRepository struct {
	db  *DB
	now func() time.Time
}

func NewCandidateRepository(db *DB) ports.CandidateRepository {
	return &CandidateRepository{db: db, now: time.Now}
}

const candidateColumns = `id, job_id, recruiter_id, name, email, phone, resume_url, stage, notes, created_at`

// selectCandidates resolves the recruiter name in the same round trip.
const selectCandidates = `
SELECT c.id, c.job_id, c.recruiter_id, c.name, c.email, c.phone, c.resume_url, c.stage, c.notes, c.created_at,
       COALESCE(u.username, '` + domain.UnknownRecruiter + `')
FROM candidates c
LEFT JOIN users u ON u.id = c.recruiter_id`

// emailKey is the case-folded form the (job_id, email_key) unique index is
// built on. Folding happens here so it covers non-ASCII letters in every dialect.
func emailKey(email string) string {
	return strings.ToLower(email)
}

func (r *CandidateRepository) ListByJob(ctx context.Context, jobID int64) ([]domain.Candidate, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.conn.QueryContext(ctx, selectCandidates+` WHERE c.job_id = $1 ORDER BY c.created_at, c.id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows, true)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}

func (r *CandidateRepository) FindByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	c, err := scanCandidate(r.db.conn.QueryRowContext(ctx, selectCandidates+` WHERE c.id = $1`, id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCandidateNotFound
	}
	return c, err
}

func (r *CandidateRepository) Create(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	stage := c.Stage
	if stage == "" {
		stage = domain.StageSubmitted
	}
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now().UTC()
	}

	var notes sql.NullString
	if c.Notes != nil {
		notes = sql.NullString{String: *c.Notes, Valid: true}
	}

	row := r.db.conn.QueryRowContext(ctx,
		`INSERT INTO candidates (job_id, recruiter_id, name, email, email_key, phone, resume_url, stage, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING `+candidateColumns,
		c.JobID, c.RecruiterID, c.Name, c.Email, emailKey(c.Email), c.Phone, c.ResumeURL, string(stage), notes, createdAt,
	)
	created, err := scanCandidate(row, false)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateCandidate
		}
		return nil, fmt.Errorf("insert candidate: %w", err)
	}
	return created, nil
}

func (r *CandidateRepository) UpdateStage(ctx context.Context, id int64, stage domain.Stage) (*domain.Candidate, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := r.db.conn.QueryRowContext(ctx,
		`UPDATE candidates SET stage = $1 WHERE id = $2 RETURNING `+candidateColumns,
		string(stage), id,
	)
	updated, err := scanCandidate(row, false)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCandidateNotFound
	}
	return updated, err
}

func (r *CandidateRepository) ExistsByJobAndEmail(ctx context.Context, jobID int64, email string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM candidates WHERE job_id = $1 AND email_key = $2)`,
		jobID, emailKey(email),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check candidate email: %w", err)
	}
	return exists, nil
}

func scanCandidate(row rowScanner, withRecruiter bool) (*domain.Candidate, error) {
	var (
		c     domain.Candidate
		stage string
		notes sql.NullString
	)
	dest := []any{&c.ID, &c.JobID, &c.RecruiterID, &c.Name, &c.Email, &c.Phone, &c.ResumeURL, &stage, &notes, timestamp{&c.CreatedAt}}
	if withRecruiter {
		dest = append(dest, &c.RecruiterUsername)
	}

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan candidate: %w", err)
	}

	c.Stage = domain.Stage(stage)
	if notes.Valid {
		n := notes.String
		c.Notes = &n
	}
	return &c, nil
}
