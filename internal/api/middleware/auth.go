package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

const (
	DefaultCookieName = "ats_session"
	identityKey       = "identity"
)

// SessionCookie describes the cookie that carries the signed session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

func (sc SessionCookie) name() string {
	if sc.Name == "" {
		return DefaultCookieName
	}
	return sc.Name
}

// Set writes the session cookie for token.
func (sc SessionCookie) Set(c echo.Context, token *ports.SessionToken) {
	c.SetCookie(&http.Cookie{
		Name:     sc.name(),
		Value:    token.Value,
		Path:     "/",
		Expires:  token.ExpiresAt,
		MaxAge:   int(time.Until(token.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie on the client.
func (sc SessionCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sc.name(),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the raw token from the request, or "".
func (sc SessionCookie) Read(c echo.Context) string {
	ck, err := c.Cookie(sc.name())
	if err != nil {
		return ""
	}
	return ck.Value
}

// Session resolves the session cookie into an identity and attaches it to
// both the echo context and the request context. Requests without a valid
// session pass through unauthenticated; RequireRole decides whether that is
// acceptable for the route.
func Session(sessions ports.SessionService, auth ports.AuthService, cookie SessionCookie, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := cookie.Read(c)
			if token == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			userID, err := sessions.Resolve(ctx, token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return next(c)
				}
				return err
			}

			user, err := auth.Identity(ctx, userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					log.Debug().Int64("user_id", userID).Msg("session for deleted user")
					return next(c)
				}
				return err
			}

			id := user.Identity()
			c.Set(identityKey, id)
			c.SetRequest(c.Request().WithContext(domain.WithIdentity(ctx, id)))
			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by Session.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

// SetIdentity attaches id to c the same way Session does.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
	c.SetRequest(c.Request().WithContext(domain.WithIdentity(c.Request().Context(), id)))
}
