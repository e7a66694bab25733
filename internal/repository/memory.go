package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/chai-gali/chai-gali-orders-service/internal/errors"
	"github.com/chai-gali/chai-gali-orders-service/internal/models"
)

// MemoryStore is an in-process implementation of every store the service
// needs. It backs tests and local runs without Postgres or Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	orders   map[string]*models.Order
	contacts map[string]*models.ContactMessage
	carts    map[string][]models.CartItem
}

var (
	_ OrderRepository   = (*MemoryStore)(nil)
	_ ContactRepository = (*MemoryStore)(nil)
	_ CartStore         = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:   make(map[string]*models.Order),
		contacts: make(map[string]*models.ContactMessage),
		carts:    make(map[string][]models.CartItem),
	}
}

func (m *MemoryStore) Create(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *MemoryStore) List(ctx context.Context, filter *models.OrderListFilter) ([]*models.Order, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email := strings.ToLower(strings.TrimSpace(filter.Email))
	matched := make([]*models.Order, 0)
	for _, o := range m.orders {
		if strings.ToLower(o.Email) == email {
			cp := *o
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := filter.Offset
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) CreateContact(ctx context.Context, msg *models.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *msg
	m.contacts[msg.ID] = &cp
	return nil
}

// Contacts returns every stored contact message.
func (m *MemoryStore) Contacts() []*models.ContactMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.ContactMessage, 0, len(m.contacts))
	for _, c := range m.contacts {
		out = append(out, c)
	}
	return out
}

// OrderCount returns the number of stored orders.
func (m *MemoryStore) OrderCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders)
}

func (m *MemoryStore) Add(ctx context.Context, session string, item models.CartItem) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := MergeCartItem(m.carts[session], item)
	m.carts[session] = items
	return append([]models.CartItem(nil), items...), nil
}

func (m *MemoryStore) Get(ctx context.Context, session string) ([]models.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.CartItem{}, m.carts[session]...), nil
}

func (m *MemoryStore) Clear(ctx context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, session)
	return nil
}

// MemoryOrderCache is an in-process OrderCache.
type MemoryOrderCache struct {
	mu   sync.RWMutex
	data map[string]*models.Order
}

var _ OrderCache = (*MemoryOrderCache)(nil)

func NewMemoryOrderCache() *MemoryOrderCache {
	return &MemoryOrderCache{data: make(map[string]*models.Order)}
}

func (c *MemoryOrderCache) Get(ctx context.Context, id string) (*models.Order, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.data[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (c *MemoryOrderCache) Set(ctx context.Context, order *models.Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *order
	c.data[order.ID] = &cp
	return nil
}

func (c *MemoryOrderCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, id)
	return nil
}
