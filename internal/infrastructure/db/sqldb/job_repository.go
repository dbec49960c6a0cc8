package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

// JobRepository implements ports.JobRepository.
type JobRepository struct {
	db  *DB
	now func() time.Time
}

func NewJobRepository(db *DB) ports.JobRepository {
	return &JobRepository{db: db, now: time.Now}
}

const jobColumns = `id, title, description, requirements, manager_id, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *JobRepository) List(ctx context.Context) ([]domain.Job, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.conn.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id int64) (*domain.Job, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	job, err := scanJob(r.db.conn.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	return job, err
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	createdAt := job.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now().UTC()
	}

	row := r.db.conn.QueryRowContext(ctx,
		`INSERT INTO jobs (title, description, requirements, manager_id, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING `+jobColumns,
		job.Title, job.Description, job.Requirements, job.ManagerID, createdAt,
	)
	created, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return created, nil
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Requirements, &j.ManagerID, timestamp{&j.CreatedAt})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	return &j, nil
}
