package sqldb

import (
	"context"
	"fmt"

	"github.com/hirepipe/ats/internal/core/ports"
)

// Store implements ports.DataStore.
type Store struct {
	db *DB
}

func NewStore(db *DB) ports.DataStore {
	return &Store{db: db}
}

// Clear removes candidates, jobs and users in that order inside a single
// transaction. Sessions are left in place; they stop resolving once their
// user row is gone.
func (s *Store) Clear(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"candidates", "jobs", "users"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}
