package service

import (
	"context"
	"encoding/json"
	"fmt"

	"feedback-be/internal/domain"
	"feedback-be/pkg/redis"
)

// SessionStore persists feedback sessions in Redis as JSON. Each session is
// owned by one interactive user, so a plain load-mutate-save cycle needs no
// locking. Abandoned sessions expire with the key TTL.
type SessionStore struct {
	redis *redis.Client
}

func NewSessionStore(redisClient *redis.Client) *SessionStore {
	return &SessionStore{redis: redisClient}
}

// Get loads a session by id. Missing or expired sessions return
// domain.ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.FeedbackSession, error) {
	key := s.redis.KeyBuilder.KeySession(sessionID)

	data, err := s.redis.Get(ctx, key)
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session domain.FeedbackSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &session, nil
}

// Save writes a session back, refreshing its TTL.
func (s *SessionStore) Save(ctx context.Context, session *domain.FeedbackSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	key := s.redis.KeyBuilder.KeySession(session.ID)
	if err := s.redis.Set(ctx, key, string(data), redis.TTLSession); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
