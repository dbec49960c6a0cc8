package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

type stubSessions struct {
	resolveFn func(ctx context.Context, token string) (int64, error)
}

func (s *stubSessions) Start(context.Context, int64) (*ports.SessionToken, error) { return nil, nil }
func (s *stubSessions) End(context.Context, string) error                         { return nil }
func (s *stubSessions) Resolve(ctx context.Context, token string) (int64, error) {
	return s.resolveFn(ctx, token)
}

type stubAuth struct {
	identityFn func(ctx context.Context, id int64) (*domain.User, error)
}

func (s *stubAuth) Register(context.Context, ports.RegisterInput) (*domain.User, error) {
	return nil, nil
}
func (s *stubAuth) Login(context.Context, string, string) (*domain.User, error) { return nil, nil }
func (s *stubAuth) Identity(ctx context.Context, id int64) (*domain.User, error) {
	return s.identityFn(ctx, id)
}

func sessionContext(cookieValue string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSession_AttachesIdentity(t *testing.T) {
	c, _ := sessionContext("tok")
	sessions := &stubSessions{resolveFn: func(_ context.Context, token string) (int64, error) {
		if token != "tok" {
			t.Fatalf("unexpected token %q", token)
		}
		return 5, nil
	}}
	auth := &stubAuth{identityFn: func(_ context.Context, id int64) (*domain.User, error) {
		return &domain.User{ID: id, Username: "rita", Role: domain.RoleRecruiter, PasswordHash: "x.y"}, nil
	}}

	called := false
	mw := Session(sessions, auth, SessionCookie{}, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		id, ok := IdentityFrom(c)
		if !ok || id.ID != 5 || id.Username != "rita" || id.Role != domain.RoleRecruiter {
			t.Fatalf("unexpected identity: %+v (ok=%v)", id, ok)
		}
		if ctxID, ok := domain.IdentityFrom(c.Request().Context()); !ok || ctxID != id {
			t.Fatalf("identity missing from request context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestSession_PassesThroughWithoutCookie(t *testing.T) {
	c, _ := sessionContext("")
	sessions := &stubSessions{resolveFn: func(context.Context, string) (int64, error) {
		t.Fatalf("should not resolve without a cookie")
		return 0, nil
	}}

	mw := Session(sessions, &stubAuth{}, SessionCookie{}, zerolog.Nop())
	err := mw(func(c echo.Context) error {
		if _, ok := IdentityFrom(c); ok {
			t.Fatalf("no identity expected")
		}
		return nil
	})(c)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSession_InvalidOrOrphanedSession(t *testing.T) {
	cases := map[string]struct {
		resolveErr  error
		identityErr error
	}{
		"invalid token": {resolveErr: domain.ErrUnauthenticated},
		"deleted user":  {identityErr: domain.ErrUserNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := sessionContext("tok")
			sessions := &stubSessions{resolveFn: func(context.Context, string) (int64, error) { return 1, tc.resolveErr }}
			auth := &stubAuth{identityFn: func(context.Context, int64) (*domain.User, error) { return nil, tc.identityErr }}

			called := false
			err := Session(sessions, auth, SessionCookie{}, zerolog.Nop())(func(c echo.Context) error {
				called = true
				if _, ok := IdentityFrom(c); ok {
					t.Fatalf("no identity expected")
				}
				return nil
			})(c)
			if err != nil || !called {
				t.Fatalf("expected pass-through, got err=%v called=%v", err, called)
			}
		})
	}
}

func TestSession_StoreFailureSurfaces(t *testing.T) {
	c, _ := sessionContext("tok")
	boom := errors.New("store down")
	sessions := &stubSessions{resolveFn: func(context.Context, string) (int64, error) { return 0, boom }}

	err := Session(sessions, &stubAuth{}, SessionCookie{}, zerolog.Nop())(func(echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestSessionCookie_SetAndClear(t *testing.T) {
	c, rec := sessionContext("")
	cookie := SessionCookie{Name: "sid", Secure: true}

	cookie.Set(c, &ports.SessionToken{Value: "signed", ExpiresAt: time.Now().Add(time.Hour)})
	cookie.Clear(c)

	cookies := (&http.Response{Header: rec.Header()}).Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected two Set-Cookie headers, got %d", len(cookies))
	}
	set, cleared := cookies[0], cookies[1]
	if set.Name != "sid" || set.Value != "signed" || !set.HttpOnly || !set.Secure || set.MaxAge <= 0 {
		t.Fatalf("unexpected cookie: %+v", set)
	}
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", cleared)
	}
}

func TestSessionCookie_Read(t *testing.T) {
	c, _ := sessionContext("abc")
	if got := (SessionCookie{}).Read(c); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	c, _ = sessionContext("")
	if got := (SessionCookie{}).Read(c); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
