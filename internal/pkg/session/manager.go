// internal/pkg/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	xerrors "showroom-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Manager stores sessions in Redis keyed by an opaque random id. A session's
// lifetime is fixed at creation; reads never extend it.
type Manager struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewManager(client redis.Cmdable, ttl time.Duration) *Manager {
	return &Manager{client: client, ttl: ttl}
}

// TTL is the lifetime given to new sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create starts a session for the user and returns it with a fresh id.
func (m *Manager) Create(ctx context.Context, userID int64, username, ip, userAgent string) (*Data, error) {
	now := time.Now().UTC()
	session := &Data{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		IPAddress: ip,
		UserAgent: userAgent,
		LoginAt:   now,
		ExpiresAt: now.Add(m.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := m.client.Set(ctx, sessionKey(session.ID), data, m.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session in redis: %w", err)
	}

	return session, nil
}

// Get loads a live session. Unknown and expired ids yield ErrSessionExpired.
func (m *Manager) Get(ctx context.Context, id string) (*Data, error) {
	if id == "" {
		return nil, xerrors.ErrSessionExpired
	}

	data, err := m.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, xerrors.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session Data
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, xerrors.ErrSessionExpired
	}

	return &session, nil
}

// Destroy removes a session. Removing an unknown id is not an error.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}
