// Package credential manages the persisted session credential marker: a
// signed token whose subject is the account id, stored in its own slot key.
// The signature replaces the fragile substring matching older builds used to
// pair a marker with an account.
package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/kestrelgames/onboarding-core-go/internal/identity/repo"
	"github.com/kestrelgames/onboarding-core-go/pkg/utilities"
)

// DefaultSlotKey is the slot the marker token lives under, separate from the
// identity record document.
const DefaultSlotKey = "session_marker"

// ErrNoMarker indicates no marker is persisted: nobody is logged in.
var ErrNoMarker = errors.New("no session marker")

// ErrStaleCredential indicates a marker that is expired, tampered with, or
// otherwise unverifiable. Callers recover by discarding it and treating the
// session as logged out.
var ErrStaleCredential = errors.New("stale session credential")

type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// ConfigFromEnv reads marker config from env vars.
func ConfigFromEnv() Config {
	secret := os.Getenv("MARKER_SECRET")
	if secret == "" {
		// dev fallback; deployments set their own
		secret = "onboarding-core-dev-secret"
	}
	ttl := 30 * 24 * time.Hour
	if v := os.Getenv("MARKER_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}
	return Config{Secret: []byte(secret), Issuer: "onboarding-core", TTL: ttl}
}

// Service issues, resolves, and clears the session marker.
type Service struct {
	slot   repo.Slot
	key    string
	cfg    Config
	logger *zap.SugaredLogger
}

// NewService constructs a marker service over a slot backend.
func NewService(slot repo.Slot, cfg Config, logger *zap.SugaredLogger) *Service {
	return &Service{slot: slot, key: DefaultSlotKey, cfg: cfg, logger: logger}
}

// Issue signs a marker for the account and persists it, replacing any
// previous marker.
func (s *Service) Issue(ctx context.Context, accountID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": s.cfg.Issuer,
		"sub": accountID,
		"jti": utilities.NewKSUID(),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.TTL).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign marker: %w", err)
	}
	if err := s.slot.Save(ctx, s.key, []byte(signed)); err != nil {
		return "", fmt.Errorf("persist marker: %w", err)
	}
	return signed, nil
}

// Resolve verifies the persisted marker and returns the account id it was
// issued for. A stale marker is discarded before ErrStaleCredential is
// returned, so a second Resolve reports ErrNoMarker.
func (s *Service) Resolve(ctx context.Context) (string, error) {
	payload, err := s.slot.Load(ctx, s.key)
	if err != nil {
		if errors.Is(err, repo.ErrSlotEmpty) {
			return "", ErrNoMarker
		}
		return "", fmt.Errorf("load marker: %w", err)
	}
	accountID, err := s.verify(string(payload))
	if err != nil {
		s.logger.Warnw("discarding stale session marker", "error", err)
		if clearErr := s.slot.Delete(ctx, s.key); clearErr != nil {
			s.logger.Warnw("failed to discard stale marker", "error", clearErr)
		}
		return "", fmt.Errorf("%w: %v", ErrStaleCredential, err)
	}
	return accountID, nil
}

// Clear removes the persisted marker. Logging out twice is not an error.
func (s *Service) Clear(ctx context.Context) error {
	return s.slot.Delete(ctx, s.key)
}

func (s *Service) verify(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	}, jwt.WithIssuer(s.cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("marker has no subject")
	}
	return sub, nil
}
