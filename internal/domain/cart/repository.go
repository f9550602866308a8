// internal/domain/cart/repository.go
package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// cartTTL keeps abandoned carts around long enough to survive a reload but
// not forever.
const cartTTL = 7 * 24 * time.Hour

// Repository persists full cart snapshots keyed by tenant tag. A missing or
// corrupt snapshot is reported as (nil, nil): the caller starts from an empty
// cart, never from an error.
type Repository interface {
	Load(ctx context.Context, storeSlug string) (*Cart, error)
	Save(ctx context.Context, storeSlug string, c *Cart) error
}

// Key returns the storage key for a tenant tag: "delivery-cart-<slug>", or
// the bare "delivery-cart" when no tenant context exists.
func Key(storeSlug string) string {
	if storeSlug == "" {
		return "delivery-cart"
	}
	return "delivery-cart-" + storeSlug
}

// Scope builds the tenant tag a cart is persisted under. Each customer gets
// their own cart per store; anonymous traffic without a session shares the
// bare store tag.
func Scope(storeSlug, customerID string) string {
	if customerID == "" {
		return storeSlug
	}
	return storeSlug + ":" + customerID
}

// RedisRepository stores carts as JSON blobs in Redis.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a Redis-backed cart repository.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

// Load retrieves the saved cart for a tenant. Corrupt payloads are treated as
// absent: the blob is best-effort client state, not a source of truth worth
// failing over.
func (r *RedisRepository) Load(ctx context.Context, storeSlug string) (*Cart, error) {
	data, err := r.client.Get(ctx, Key(storeSlug)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var c Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, nil
	}
	return &c, nil
}

// Save serializes the full cart snapshot. Each write replaces the previous
// blob wholesale, so a reader always sees a consistent cart.
func (r *RedisRepository) Save(ctx context.Context, storeSlug string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, Key(storeSlug), data, cartTTL).Err()
}

// MemoryRepository is an in-memory Repository used in tests. It serializes
// through JSON like the Redis implementation so round-trip behavior matches.
type MemoryRepository struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryRepository creates an empty in-memory cart repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{blobs: make(map[string][]byte)}
}

// Load implements Repository.
func (r *MemoryRepository) Load(ctx context.Context, storeSlug string) (*Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.blobs[Key(storeSlug)]
	if !ok {
		return nil, nil
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, nil
	}
	return &c, nil
}

// Save implements Repository.
func (r *MemoryRepository) Save(ctx context.Context, storeSlug string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[Key(storeSlug)] = data
	return nil
}

// Corrupt overwrites a stored blob with unparseable bytes. Test helper for
// the corrupt-snapshot recovery path.
func (r *MemoryRepository) Corrupt(storeSlug string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[Key(storeSlug)] = []byte("{not json")
}
