package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

// SessionStore implements domain.SessionStore. Sessions are JSON
// principals written by the identity collaborator under
// <prefix>:<token>; this side only reads them.
type SessionStore struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
}

// NewSessionStore creates a new Redis session store.
func NewSessionStore(client *redis.Client, logger *zap.Logger, prefix string) *SessionStore {
	return &SessionStore{
		client: client,
		logger: logger,
		prefix: prefix,
	}
}

// Resolve looks up the principal for an opaque bearer token. Unknown or
// expired tokens return nil without error; the transport layer decides
// what a missing principal means.
func (s *SessionStore) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	if token == "" {
		return nil, nil
	}

	data, err := s.client.Get(ctx, s.prefix+":"+token).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("session lookup failed", zap.Error(err))

		return nil, fmt.Errorf("resolving session: %w", err)
	}

	var principal domain.Principal
	if err := json.Unmarshal(data, &principal); err != nil {
		s.logger.Warn("corrupt session payload dropped", zap.Error(err))

		return nil, nil
	}

	return &principal, nil
}

// Put writes a session for a token with the given lifetime. Used by
// tests and local tooling; production sessions are issued elsewhere.
func (s *SessionStore) Put(ctx context.Context, token string, principal *domain.Principal, ttl time.Duration) error {
	data, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+":"+token, data, ttl).Err(); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}

	return nil
}
