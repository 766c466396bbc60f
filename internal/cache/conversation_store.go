package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/GTDGit/food_finder/internal/models"
)

// MemoryConversationStore keeps conversations in process memory. Idle
// sessions are removed by calling EvictIdle periodically.
type MemoryConversationStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Conversation
}

// NewMemoryConversationStore creates an empty store.
func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{sessions: make(map[string]models.Conversation)}
}

// Get returns a copy of the conversation or ErrNotFound.
func (s *MemoryConversationStore) Get(_ context.Context, sessionID string) (*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneConversation(conv)
	return &out, nil
}

// Save stores a copy of conv.
func (s *MemoryConversationStore) Save(_ context.Context, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[conv.SessionID] = cloneConversation(*conv)
	return nil
}

// Delete removes a conversation. Deleting an unknown session is not an error.
func (s *MemoryConversationStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// EvictIdle removes conversations whose last activity is before cutoff and
// returns how many were removed.
func (s *MemoryConversationStore) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, conv := range s.sessions {
		if conv.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of live conversations.
func (s *MemoryConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func cloneConversation(c models.Conversation) models.Conversation {
	c.History = append([]models.ChatMessage(nil), c.History...)
	c.LastFoodItems = append([]string(nil), c.LastFoodItems...)
	return c
}

// RedisConversationStore keeps conversations in Redis. Each save refreshes
// the key TTL, so idle sessions expire on their own.
type RedisConversationStore struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewRedisConversationStore creates a new RedisConversationStore.
func NewRedisConversationStore(redis *RedisClient, ttl time.Duration) *RedisConversationStore {
	return &RedisConversationStore{
		redis: redis,
		ttl:   ttl,
	}
}

// keyBySessionID returns the Redis key for a conversation.
func (s *RedisConversationStore) keyBySessionID(sessionID string) string {
	return fmt.Sprintf("chat:session:%s", sessionID)
}

// Get loads a conversation or returns ErrNotFound.
func (s *RedisConversationStore) Get(ctx context.Context, sessionID string) (*models.Conversation, error) {
	raw, err := s.redis.Get(ctx, s.keyBySessionID(sessionID))
	if err != nil {
		return nil, err
	}

	var conv models.Conversation
	if err := json.Unmarshal([]byte(raw), &conv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}
	return &conv, nil
}

// Save stores conv and resets its idle TTL.
func (s *RedisConversationStore) Save(ctx context.Context, conv *models.Conversation) error {
	jsonData, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}
	return s.redis.Set(ctx, s.keyBySessionID(conv.SessionID), string(jsonData), s.ttl)
}

// Delete removes a conversation.
func (s *RedisConversationStore) Delete(ctx context.Context, sessionID string) error {
	return s.redis.Delete(ctx, s.keyBySessionID(sessionID))
}
