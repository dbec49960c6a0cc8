package ports

import (
	"context"

	"github.com/hirepipe/ats/internal/core/domain"
)

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	List(ctx context.Context) ([]domain.Job, error)
	FindByID(ctx context.Context, id int64) (*domain.Job, error)
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
}
