package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/config"
	redisclient "github.com/delanoso/safetyhub/pkg/redis"
)

// ErrInvalidSession covers bad signatures, expiry and revoked sessions alike.
var ErrInvalidSession = errors.New("invalid session")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Manager issues signed session tokens and tracks them in Redis so logout
// revokes them server-side.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	cfg   config.SessionConfig
	now   func() time.Time
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL() <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	return &Manager{store: client, keyer: client, cfg: cfg, now: time.Now}, nil
}

// TTL is the cookie lifetime.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL()
}

// Create registers a new session for userID and returns the signed cookie value.
func (m *Manager) Create(ctx context.Context, userID uint) (string, error) {
	sessionID := uuid.NewString()
	token, err := auth.MintSessionToken(m.cfg, m.now(), userID, sessionID)
	if err != nil {
		return "", err
	}
	if err := m.store.Set(ctx, m.keyer.SessionKey(sessionID), strconv.FormatUint(uint64(userID), 10), m.cfg.TTL()); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve returns the user id for a live session token.
func (m *Manager) Resolve(ctx context.Context, token string) (uint, error) {
	claims, err := auth.ParseSessionToken(m.cfg, token)
	if err != nil {
		return 0, ErrInvalidSession
	}
	stored, err := m.store.Get(ctx, m.keyer.SessionKey(claims.ID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return 0, ErrInvalidSession
		}
		return 0, err
	}
	if stored != strconv.FormatUint(uint64(claims.UserID), 10) {
		return 0, ErrInvalidSession
	}
	return claims.UserID, nil
}

// Revoke deletes the server-side record. Invalid tokens are ignored.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := auth.ParseSessionToken(m.cfg, token)
	if err != nil {
		return nil
	}
	return m.store.Del(ctx, m.keyer.SessionKey(claims.ID))
}
