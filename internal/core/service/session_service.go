package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionService binds opaque session ids stored server-side to signed
// cookie values. The signature only guards against forged ids; the stored
// session remains the source of truth, so logout revokes immediately.
type SessionService struct {
	store  ports.SessionStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

func NewSessionService(store ports.SessionStore, secret string, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{store: store, secret: []byte(secret), ttl: ttl, now: time.Now, log: log}
}

func (s *SessionService) Start(ctx context.Context, userID int64) (*ports.SessionToken, error) {
	now := s.now()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl).UTC(),
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}

	claims := jwt.RegisteredClaims{
		ID:        sess.ID,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		_ = s.store.Delete(ctx, sess.ID)
		return nil, err
	}

	return &ports.SessionToken{Value: signed, ExpiresAt: sess.ExpiresAt}, nil
}

func (s *SessionService) Resolve(ctx context.Context, token string) (int64, error) {
	claims, err := s.parse(token, jwt.WithTimeFunc(s.now))
	if err != nil {
		return 0, domain.ErrUnauthenticated
	}

	sess, err := s.store.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return 0, domain.ErrUnauthenticated
		}
		return 0, err
	}

	if strconv.FormatInt(sess.UserID, 10) != claims.Subject {
		s.log.Warn().Str("sid", claims.ID).Msg("session subject mismatch")
		return 0, domain.ErrUnauthenticated
	}
	return sess.UserID, nil
}

// End ignores tokens that fail the signature check. Expired tokens are still
// honoured so the stored session can be removed.
func (s *SessionService) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil || claims.ID == "" {
		return nil
	}
	return s.store.Delete(ctx, claims.ID)
}

func (s *SessionService) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
