package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bakehouse/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrCartNotFound is returned when no cart exists for a session ID, either
// because it was never created or because its TTL elapsed.
var ErrCartNotFound = errors.New("cart session not found or expired")

const cartKeyPrefix = "cart:"

// CartStore holds draft carts with an explicit lifecycle: created on first
// use, refreshed on every save, removed on clear or TTL expiry. It is
// injected into the handlers rather than reached for as a package singleton,
// so a session's draft state has one owner and one teardown path.
type CartStore interface {
	New() *models.Cart
	Get(sessionID string) (*models.Cart, error)
	Save(cart *models.Cart) error
	Clear(sessionID string) error
}

// RedisCartStore implements CartStore on a dedicated Redis DB.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore creates a cart store with the given session TTL.
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

// New issues a fresh cart with a generated session ID. Nothing is persisted
// until the first Save.
func (s *RedisCartStore) New() *models.Cart {
	return &models.Cart{SessionID: uuid.New().String()}
}

// Get loads the cart for a session ID.
func (s *RedisCartStore) Get(sessionID string) (*models.Cart, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.client.Get(ctx, cartKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", sessionID, err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to parse cart %s: %w", sessionID, err)
	}
	return &cart, nil
}

// Save persists the cart and refreshes its TTL.
func (s *RedisCartStore) Save(cart *models.Cart) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cart.UpdatedAt = time.Now()
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart %s: %w", cart.SessionID, err)
	}
	if err := s.client.Set(ctx, cartKeyPrefix+cart.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cart.SessionID, err)
	}
	return nil
}

// Clear tears down a cart session. Clearing an absent session is a no-op.
func (s *RedisCartStore) Clear(sessionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", sessionID, err)
	}
	return nil
}
