package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hirepipe/ats/internal/api/metrics"
	"github.com/hirepipe/ats/internal/api/middleware"
	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

type AuthHandler struct {
	authService    ports.AuthService
	sessionService ports.SessionService
	cookie         middleware.SessionCookie
	log            zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, sessionService ports.SessionService, cookie middleware.SessionCookie, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessionService: sessionService, cookie: cookie, log: log}
}

// Register creates a new account and signs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  domain.Identity
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		return err
	}

	if err := h.startSession(c, user); err != nil {
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	return c.JSON(http.StatusCreated, user.Identity())
}

// Login authenticates with username and password and establishes a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  domain.Identity
// @Failure      401   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return domain.ErrInvalidCredentials
	}

	user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return err
	}

	if err := h.startSession(c, user); err != nil {
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return c.JSON(http.StatusOK, user.Identity())
}

// Logout destroys the current session, if any. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Success      200
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := h.cookie.Read(c); token != "" {
		if err := h.sessionService.End(c.Request().Context(), token); err != nil {
			h.log.Warn().Err(err).Msg("failed to end session")
		}
	}
	h.cookie.Clear(c)
	return c.NoContent(http.StatusOK)
}

// Me returns the identity behind the current session.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  errorResponse
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, id)
}

func (h *AuthHandler) startSession(c echo.Context, user *domain.User) error {
	token, err := h.sessionService.Start(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	h.cookie.Set(c, token)
	return nil
}
