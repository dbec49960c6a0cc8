package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

type ResetService struct {
	store  ports.DataStore
	events ports.StageEventRepository
	log    zerolog.Logger
}

// NewResetService accepts a nil events repository when auditing is disabled.
func NewResetService(store ports.DataStore, events ports.StageEventRepository, log zerolog.Logger) *ResetService {
	if events == nil {
		events = noopStageEvents{}
	}
	return &ResetService{store: store, events: events, log: log}
}

// Reset wipes candidates, jobs and users. Failing to clear the audit trail is
// logged and does not fail the reset.
func (s *ResetService) Reset(ctx context.Context, actor domain.Identity) error {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to clear data")
		return err
	}
	if err := s.events.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear stage events")
	}

	s.log.Warn().Int64("actor_id", actor.ID).Str("actor", actor.Username).Msg("all data cleared")
	return nil
}
