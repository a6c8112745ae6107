package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionStoreUnavailable is returned when no Redis client is configured.
var ErrSessionStoreUnavailable = errors.New("session store unavailable")

// Letter is the transient result of one generation, held per session until it
// expires or the session ends. It is not durable storage; losing it only
// costs the download action, never the audit log.
type Letter struct {
	Text         string    `json:"text"`
	JobTitle     string    `json:"job_title"`
	EmployerName string    `json:"employer_name"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// LetterStore keeps the most recent generated letter per session in Redis,
// keyed by the session's token ID, with its own expiry.
type LetterStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewLetterStore returns a LetterStore writing entries with the given TTL.
func NewLetterStore(rdb *redis.Client, ttl time.Duration) *LetterStore {
	return &LetterStore{rdb: rdb, ttl: ttl}
}

func letterKey(sessionID string) string {
	return fmt.Sprintf("letter:%s", sessionID)
}

// Put stores the letter for the session, replacing any previous one.
func (s *LetterStore) Put(ctx context.Context, sessionID string, letter Letter) error {
	if s.rdb == nil {
		return ErrSessionStoreUnavailable
	}
	payload, err := json.Marshal(letter)
	if err != nil {
		return fmt.Errorf("marshal letter: %w", err)
	}
	return s.rdb.Set(ctx, letterKey(sessionID), payload, s.ttl).Err()
}

// Get returns the session's letter, or nil when none exists or it expired.
func (s *LetterStore) Get(ctx context.Context, sessionID string) (*Letter, error) {
	if s.rdb == nil {
		return nil, ErrSessionStoreUnavailable
	}
	payload, err := s.rdb.Get(ctx, letterKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var letter Letter
	if err := json.Unmarshal(payload, &letter); err != nil {
		return nil, fmt.Errorf("unmarshal letter: %w", err)
	}
	return &letter, nil
}

// Delete removes the session's letter. Deleting an absent slot is not an error.
func (s *LetterStore) Delete(ctx context.Context, sessionID string) error {
	if s.rdb == nil {
		return ErrSessionStoreUnavailable
	}
	return s.rdb.Del(ctx, letterKey(sessionID)).Err()
}
