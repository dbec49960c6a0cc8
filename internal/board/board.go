// Package board derives the kanban view of a job's candidates and turns
// drag-and-drop moves into stage updates. The server stays the source of
// truth: columns only change after a successful reload.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hirepipe/ats/internal/core/domain"
)

// Column is one stage of the board and the candidates in it, in list order.
type Column struct {
	Stage      domain.Stage
	Candidates []domain.Candidate
}

// Grouping is the result of Group. Columns always holds one entry per
// pipeline stage, in pipeline order. Unplaced collects candidates whose
// stage is not a pipeline stage so none are silently lost.
type Grouping struct {
	Columns  []Column
	Unplaced []domain.Candidate
}

// Group buckets candidates by stage, keeping their relative order.
func Group(candidates []domain.Candidate) Grouping {
	g := Grouping{Columns: make([]Column, len(domain.Stages))}
	index := make(map[domain.Stage]int, len(domain.Stages))
	for i, st := range domain.Stages {
		g.Columns[i] = Column{Stage: st, Candidates: []domain.Candidate{}}
		index[st] = i
	}

	for _, c := range candidates {
		i, ok := index[c.Stage]
		if !ok {
			g.Unplaced = append(g.Unplaced, c)
			continue
		}
		g.Columns[i].Candidates = append(g.Columns[i].Candidates, c)
	}
	return g
}

// Column returns the column for stage, or false for unknown stages.
func (g Grouping) Column(stage domain.Stage) (Column, bool) {
	for _, col := range g.Columns {
		if col.Stage == stage {
			return col, true
		}
	}
	return Column{}, false
}

// Source is the API the board reads from and writes to.
type Source interface {
	Candidates(ctx context.Context, jobID int64) ([]domain.Candidate, error)
	UpdateStage(ctx context.Context, candidateID int64, stage domain.Stage) (*domain.Candidate, error)
}

// Drop is a completed drag. An empty Destination means the drag was
// cancelled outside any column.
type Drop struct {
	CandidateID int64
	Destination domain.Stage
}

var ErrUnknownStage = errors.New("board: unknown destination stage")

// Board is the view model for one job.
type Board struct {
	source Source
	jobID  int64

	mu       sync.RWMutex
	grouping Grouping
}

func New(source Source, jobID int64) *Board {
	return &Board{source: source, jobID: jobID, grouping: Group(nil)}
}

// JobID returns the job the board shows.
func (b *Board) JobID() int64 { return b.jobID }

// Load fetches the job's candidates and regroups them. On error the
// previous columns are kept.
func (b *Board) Load(ctx context.Context) error {
	candidates, err := b.source.Candidates(ctx, b.jobID)
	if err != nil {
		return fmt.Errorf("board: load job %d: %w", b.jobID, err)
	}

	g := Group(candidates)
	b.mu.Lock()
	b.grouping = g
	b.mu.Unlock()
	return nil
}

// Grouping returns the current columns.
func (b *Board) Grouping() Grouping {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.grouping
}

// OnDragEnd issues exactly one stage update for a completed drop and then
// reloads from the server. A cancelled drop does nothing. When the update
// fails the columns are left untouched and the error is returned.
func (b *Board) OnDragEnd(ctx context.Context, drop Drop) error {
	if drop.Destination == "" {
		return nil
	}
	if !drop.Destination.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStage, drop.Destination)
	}

	if _, err := b.source.UpdateStage(ctx, drop.CandidateID, drop.Destination); err != nil {
		return fmt.Errorf("board: move candidate %d: %w", drop.CandidateID, err)
	}
	return b.Load(ctx)
}
