package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/varaher/prana/internal/infrastructure/redis"
)

// ErrNotFound is returned when a reminder does not exist or already fired.
var ErrNotFound = errors.New("reminder not found")

// Reminder is one scheduled medication notification. The service owns only
// the schedule state; delivery belongs to the push layer.
type Reminder struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Medication string    `json:"medication"`
	Note       string    `json:"note,omitempty"`
	FireAt     time.Time `json:"fire_at"`
}

// Store is the schedule storage boundary. Entries expire at their fire time,
// so a fired reminder vanishes without a sweeper.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	store Store
}

// NewService backs the schedule with Redis when it is configured and
// reachable, and falls back to process memory otherwise.
func NewService(redisService *redis.Service) *Service {
	var store Store
	if redisService != nil {
		if err := redisService.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Redis unreachable, keeping reminder schedules in memory")
			store = newMemoryStore()
		} else {
			store = &redisStore{redisService: redisService}
		}
	} else {
		store = newMemoryStore()
	}

	return &Service{store: store}
}

// Schedule registers a reminder that fires at the given time.
func (s *Service) Schedule(ctx context.Context, userID uuid.UUID, medication, note string, fireAt time.Time) (*Reminder, error) {
	if medication == "" {
		return nil, fmt.Errorf("medication name is required")
	}
	ttl := time.Until(fireAt)
	if ttl <= 0 {
		return nil, fmt.Errorf("fire time must be in the future")
	}

	reminder := &Reminder{
		ID:         uuid.New(),
		UserID:     userID,
		Medication: medication,
		Note:       note,
		FireAt:     fireAt,
	}

	data, err := json.Marshal(reminder)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, reminderKey(userID, reminder.ID), string(data), ttl); err != nil {
		return nil, fmt.Errorf("failed to store reminder: %w", err)
	}

	log.Info().Str("reminder_id", reminder.ID.String()).Time("fire_at", fireAt).Msg("Reminder scheduled")
	return reminder, nil
}

// List returns the pending reminders for one user.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Reminder, error) {
	keys, err := s.store.Keys(ctx, fmt.Sprintf("reminder:%s:*", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	reminders := []Reminder{}
	for _, key := range keys {
		data, err := s.store.Get(ctx, key)
		if err != nil {
			// Entry expired between the scan and the read
			continue
		}
		var reminder Reminder
		if err := json.Unmarshal([]byte(data), &reminder); err != nil {
			log.Warn().Str("key", key).Msg("Dropping malformed reminder entry")
			continue
		}
		reminders = append(reminders, reminder)
	}
	return reminders, nil
}

// Cancel removes a pending reminder.
func (s *Service) Cancel(ctx context.Context, userID, id uuid.UUID) error {
	key := reminderKey(userID, id)
	if _, err := s.store.Get(ctx, key); err != nil {
		return ErrNotFound
	}
	return s.store.Delete(ctx, key)
}

func reminderKey(userID, id uuid.UUID) string {
	return fmt.Sprintf("reminder:%s:%s", userID, id)
}

// redisStore delegates to the shared Redis service.
type redisStore struct {
	redisService *redis.Service
}

func (rs *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return rs.redisService.Set(ctx, key, value, ttl)
}

func (rs *redisStore) Get(ctx context.Context, key string) (string, error) {
	return rs.redisService.Get(ctx, key)
}

func (rs *redisStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	return rs.redisService.Keys(ctx, pattern)
}

func (rs *redisStore) Delete(ctx context.Context, key string) error {
	return rs.redisService.Delete(ctx, key)
}

// memoryStore mimics the Redis TTL semantics in process memory.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (ms *memoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (ms *memoryStore) Get(_ context.Context, key string) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	entry, ok := ms.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", ErrNotFound
	}
	return entry.value, nil
}

func (ms *memoryStore) Keys(_ context.Context, pattern string) ([]string, error) {
	prefix := strings.TrimSuffix(pattern, "*")

	ms.mu.RLock()
	defer ms.mu.RUnlock()
	now := time.Now()

	keys := []string{}
	for key, entry := range ms.entries {
		if strings.HasPrefix(key, prefix) && now.Before(entry.expiresAt) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (ms *memoryStore) Delete(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.entries, key)
	return nil
}
