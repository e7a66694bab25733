package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/models"
)

// CartKey is the storage key the saved cart lives under.
const CartKey = "chai-gali-cart"

const maxCartRetries = 5

// ErrCartConflict is returned when concurrent writers keep racing on one cart.
var ErrCartConflict = errors.New("cart was modified concurrently")

// CartKeyFor scopes CartKey to one visitor session.
func CartKeyFor(session string) string {
	return CartKey + ":" + session
}

// RedisCartStore keeps each cart as a JSON list under CartKeyFor(session).
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.LoggerV2
}

var _ CartStore = (*RedisCartStore)(nil)

// NewRedisCartStore creates a cart store. A zero ttl keeps carts forever.
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client: client,
		ttl:    ttl,
		logger: logging.NewLoggerV2("cart-store"),
	}
}

// Add merges item into the cart inside a WATCH transaction, retrying when
// another writer touched the key first.
func (s *RedisCartStore) Add(ctx context.Context, session string, item models.CartItem) ([]models.CartItem, error) {
	key := CartKeyFor(session)
	var result []models.CartItem

	txf := func(tx *redis.Tx) error {
		items, err := readCart(ctx, tx, key)
		if err != nil {
			return err
		}
		items = MergeCartItem(items, item)

		data, err := json.Marshal(items)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err == nil {
			result = items
		}
		return err
	}

	for i := 0; i < maxCartRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			s.logger.Debug("Cart updated", logging.Fields{
				"session": session,
				"item":    item.Name,
				"lines":   len(result),
			})
			return result, nil
		}
		if err == redis.TxFailedErr {
			continue
		}
		s.logger.Error("Cart update failed", logging.Fields{
			"session": session,
			"error":   err.Error(),
		})
		return nil, err
	}

	return nil, ErrCartConflict
}

// Get returns the saved cart, empty when none exists.
func (s *RedisCartStore) Get(ctx context.Context, session string) ([]models.CartItem, error) {
	return readCart(ctx, s.client, CartKeyFor(session))
}

// Clear deletes the saved cart.
func (s *RedisCartStore) Clear(ctx context.Context, session string) error {
	return s.client.Del(ctx, CartKeyFor(session)).Err()
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// readCart decodes a stored cart. A missing or unreadable blob reads as an
// empty cart.
func readCart(ctx context.Context, c stringGetter, key string) ([]models.CartItem, error) {
	data, err := c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return []models.CartItem{}, nil
	}
	return items, nil
}
