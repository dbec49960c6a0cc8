package ports

import (
	"context"

	"github.com/hirepipe/ats/internal/core/domain"
)

// StageEventRepository stores the audit trail of candidate stage changes.
type StageEventRepository interface {
	Record(ctx context.Context, event *domain.StageEvent) error
	ListByCandidate(ctx context.Context, candidateID int64) ([]domain.StageEvent, error)
	Clear(ctx context.Context) error
}
