package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/digiwallet/wallet-console/internal/core/domain"
)

const (
	sessionKeyPrefix = "session:"
	noticeSuffix     = ":notice"
	// noticeTTL bounds how long an unconsumed "session expired" notice
	// survives; after that the user simply lands on a fresh login view.
	noticeTTL = 5 * time.Minute
)

// SessionStore keeps one Redis hash per session (token + display name), so
// both fields expire and clear atomically together. Session TTL matches the
// backend token lifetime.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration

	mu   sync.RWMutex
	subs []func(sessionID string)
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Put(ctx context.Context, sess *domain.Session) error {
	key := sessionKey(sess.ID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, "token", sess.Token, "name", sess.DisplayName)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}
	return &domain.Session{
		ID:          id,
		Token:       fields["token"],
		DisplayName: fields["name"],
	}, nil
}

func (s *SessionStore) CacheDisplayName(ctx context.Context, id, name string) error {
	key := sessionKey(id)
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("session exists: %w", err)
	}
	if n == 0 {
		// Session vanished between evaluation and caching; nothing to do.
		return nil
	}
	if err := s.client.HSet(ctx, key, "name", name).Err(); err != nil {
		return fmt.Errorf("display name cache: %w", err)
	}
	return nil
}

// Clear deletes the session hash. Only an actual deletion reports true and
// notifies subscribers; clearing an absent session is a no-op.
func (s *SessionStore) Clear(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("session clear: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	s.notify(id)
	return true, nil
}

// MarkExpiredNotice sets the one-shot notice flag. SETNX makes the first
// caller win, so concurrent 401 handlers produce a single notice.
func (s *SessionStore) MarkExpiredNotice(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.SetNX(ctx, sessionKey(id)+noticeSuffix, "1", noticeTTL).Result()
	if err != nil {
		return false, fmt.Errorf("notice mark: %w", err)
	}
	return ok, nil
}

// ConsumeExpiredNotice reads and deletes the notice flag in one step.
func (s *SessionStore) ConsumeExpiredNotice(ctx context.Context, id string) (bool, error) {
	_, err := s.client.GetDel(ctx, sessionKey(id)+noticeSuffix).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("notice consume: %w", err)
	}
	return true, nil
}

func (s *SessionStore) Subscribe(fn func(sessionID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *SessionStore) notify(id string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fn := range s.subs {
		fn(id)
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}
