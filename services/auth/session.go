package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "adminSession:"

// ErrNoSession is returned when a session id does not resolve to a live
// server-side session.
var ErrNoSession = errors.New("no valid session")

// Session is the server-side session record. The client only ever holds the
// signed session id; the principal is re-hydrated by user lookup per request.
type Session struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore persists sessions keyed by session id with a TTL.
type SessionStore interface {
	Save(ctx context.Context, sid string, session Session, ttl time.Duration) error
	Get(ctx context.Context, sid string) (*Session, error)
	Delete(ctx context.Context, sid string) error
}

// redisSessionStore keeps session records in redis, JSON-marshalled under a
// prefixed key.
type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore returns a SessionStore over the given redis client.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Save(ctx context.Context, sid string, session Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionPrefix+sid, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, sid string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionPrefix+sid).Result()
	if err == redis.Nil {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sid string) error {
	return s.client.Del(ctx, sessionPrefix+sid).Err()
}

// memorySessionStore is an in-memory SessionStore for tests.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	expiry   map[string]time.Time
}

// NewMemorySessionStore returns an empty in-memory SessionStore.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]Session),
		expiry:   make(map[string]time.Time),
	}
}

func (s *memorySessionStore) Save(ctx context.Context, sid string, session Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = session
	s.expiry[sid] = time.Now().Add(ttl)
	return nil
}

func (s *memorySessionStore) Get(ctx context.Context, sid string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sid]
	if !ok || time.Now().After(s.expiry[sid]) {
		return nil, ErrNoSession
	}
	return &session, nil
}

func (s *memorySessionStore) Delete(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	delete(s.expiry, sid)
	return nil
}
