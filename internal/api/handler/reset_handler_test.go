package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hirepipe/ats/internal/api/middleware"
	"github.com/hirepipe/ats/internal/core/domain"
)

type stubResetService struct {
	resetFn func(ctx context.Context, actor domain.Identity) error
}

func (s *stubResetService) Reset(ctx context.Context, actor domain.Identity) error {
	return s.resetFn(ctx, actor)
}

func TestResetHandler_Reset(t *testing.T) {
	var got domain.Identity
	h := NewResetHandler(&stubResetService{resetFn: func(_ context.Context, actor domain.Identity) error {
		got = actor
		return nil
	}})

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/reset", nil), rec)
	middleware.SetIdentity(c, managerIdentity)

	if err := h.Reset(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != managerIdentity {
		t.Fatalf("expected actor %+v, got %+v", managerIdentity, got)
	}
}

func TestResetHandler_RequiresIdentity(t *testing.T) {
	h := NewResetHandler(&stubResetService{resetFn: func(context.Context, domain.Identity) error {
		t.Fatal("reset should not run without an identity")
		return nil
	}})

	e := newTestEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/reset", nil), httptest.NewRecorder())

	if err := h.Reset(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestResetHandler_PropagatesFailure(t *testing.T) {
	boom := errors.New("tx aborted")
	h := NewResetHandler(&stubResetService{resetFn: func(context.Context, domain.Identity) error { return boom }})

	e := newTestEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/reset", nil), httptest.NewRecorder())
	middleware.SetIdentity(c, managerIdentity)

	if err := h.Reset(c); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}
