// internal/domain/checkout/reservation.go
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// reservationTTL bounds how long a submission key blocks replays.
const reservationTTL = 15 * time.Minute

// reservationPending marks a reservation whose order is still being created.
const reservationPending = "__pending__"

// ReservationStore guards submissions against duplicates. Reserve returns the
// stored order number when the key already completed, "" when the caller won
// the reservation, and ErrDuplicateSubmission while another submission with
// the same key is still in flight. A reservation that is not completed must be
// released so the key stays usable for a retry.
type ReservationStore interface {
	Reserve(ctx context.Context, storeSlug, key string) (string, error)
	Complete(ctx context.Context, storeSlug, key, orderNumber string) error
	Release(ctx context.Context, storeSlug, key string) error
}

func reservationKey(storeSlug, key string) string {
	return fmt.Sprintf("checkout:idem:%s:%s", storeSlug, key)
}

// RedisReservationStore keeps reservations in Redis under a bounded TTL.
type RedisReservationStore struct {
	client *redis.Client
}

// NewRedisReservationStore creates a Redis-backed reservation store.
func NewRedisReservationStore(client *redis.Client) *RedisReservationStore {
	return &RedisReservationStore{client: client}
}

// Reserve implements ReservationStore.
func (r *RedisReservationStore) Reserve(ctx context.Context, storeSlug, key string) (string, error) {
	redisKey := reservationKey(storeSlug, key)
	ok, err := r.client.SetNX(ctx, redisKey, reservationPending, reservationTTL).Result()
	if err != nil {
		return "", fmt.Errorf("failed to reserve submission: %w", err)
	}
	if ok {
		return "", nil
	}

	val, err := r.client.Get(ctx, redisKey).Result()
	if err == nil && val != reservationPending {
		return val, nil
	}
	return "", ErrDuplicateSubmission
}

// Complete implements ReservationStore.
func (r *RedisReservationStore) Complete(ctx context.Context, storeSlug, key, orderNumber string) error {
	return r.client.Set(ctx, reservationKey(storeSlug, key), orderNumber, reservationTTL).Err()
}

// Release implements ReservationStore.
func (r *RedisReservationStore) Release(ctx context.Context, storeSlug, key string) error {
	return r.client.Del(ctx, reservationKey(storeSlug, key)).Err()
}

// MemoryReservationStore is an in-memory ReservationStore used in tests.
type MemoryReservationStore struct {
	mu      sync.Mutex
	entries map[string]string

	// CompleteErr forces Complete to fail. Test hook for the release fallback.
	CompleteErr error
}

// NewMemoryReservationStore creates an empty in-memory reservation store.
func NewMemoryReservationStore() *MemoryReservationStore {
	return &MemoryReservationStore{entries: make(map[string]string)}
}

// Reserve implements ReservationStore.
func (m *MemoryReservationStore) Reserve(ctx context.Context, storeSlug, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	val, ok := m.entries[reservationKey(storeSlug, key)]
	if !ok {
		m.entries[reservationKey(storeSlug, key)] = reservationPending
		return "", nil
	}
	if val != reservationPending {
		return val, nil
	}
	return "", ErrDuplicateSubmission
}

// Complete implements ReservationStore.
func (m *MemoryReservationStore) Complete(ctx context.Context, storeSlug, key, orderNumber string) error {
	if m.CompleteErr != nil {
		return m.CompleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[reservationKey(storeSlug, key)] = orderNumber
	return nil
}

// Release implements ReservationStore.
func (m *MemoryReservationStore) Release(ctx context.Context, storeSlug, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, reservationKey(storeSlug, key))
	return nil
}
