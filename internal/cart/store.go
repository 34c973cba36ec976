package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/kv"
	"github.com/amaclone/storefront/pkg/logger"
	"github.com/amaclone/storefront/pkg/metrics"
)

// Observer is notified after every mutation with the operation name and the persist result.
type Observer func(op string, err error)

// Option customizes a Store at Open time.
type Option func(*Store)

// WithObserver registers fn to be called after each mutation.
func WithObserver(fn Observer) Option {
	return func(s *Store) {
		s.observe = fn
	}
}

// Store is the cart for a single session. Mutations are serialized and each one that
// changes state writes the full collection to the backing store exactly once.
// Concurrent Stores over the same session race at the backing store; the last write wins.
type Store struct {
	mu        sync.Mutex
	items     []LineItem
	backing   kv.Store
	logg      *logger.Logger
	observe   Observer
	recovered bool
}

// Open restores the cart persisted in backing. A missing key yields an empty cart. Read
// failures and unreadable data also yield an empty cart; they are logged, not returned.
func Open(ctx context.Context, backing kv.Store, logg *logger.Logger, opts ...Option) *Store {
	if backing == nil {
		backing = kv.NewMemory()
	}
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Store{backing: backing, logg: logg, items: []LineItem{}}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := backing.Get(ctx, StorageKey)
	switch {
	case err != nil:
		s.recovered = true
		logg.WarnErr(ctx, "cart restore failed, starting with an empty cart", err)
	case !ok:
	default:
		items, err := Decode(raw)
		if err != nil {
			s.recovered = true
			logg.WarnErr(ctx, "discarding unreadable cart", err)
			break
		}
		s.items = items
	}
	return s
}

// Recovered reports whether Open discarded persisted state it could not read.
func (s *Store) Recovered() bool {
	return s.recovered
}

// AddItem merges item.Quantity into an existing entry with the same ID, keeping that
// entry's name, price and image, or appends item when the ID is new.
func (s *Store) AddItem(ctx context.Context, item LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(item.ID); idx >= 0 {
		s.items[idx].Quantity += item.Quantity
	} else {
		s.items = append(s.items, item)
	}
	return s.persist(ctx, metrics.CartOpAdd)
}

// UpdateItemQuantity sets the quantity of the item with id verbatim. Unknown ids are a no-op.
func (s *Store) UpdateItemQuantity(ctx context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.items[idx].Quantity = quantity
	return s.persist(ctx, metrics.CartOpUpdate)
}

// RemoveItem deletes the item with id. Unknown ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return s.persist(ctx, metrics.CartOpRemove)
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []LineItem{}
	return s.persist(ctx, metrics.CartOpClear)
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount is the sum of all quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCount()
}

// Total is the sum of price times quantity.
func (s *Store) Total() float64 {
	return s.TotalDecimal().InexactFloat64()
}

// TotalDecimal is Total without the float conversion.
func (s *Store) TotalDecimal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total()
}

// IsEmpty reports whether the cart has no entries.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Summary returns the items together with the derived values, read under one lock.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return Summary{
		Items:     items,
		ItemCount: s.itemCount(),
		Total:     s.total().InexactFloat64(),
		IsEmpty:   len(items) == 0,
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) itemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) total() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range s.items {
		sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// persist writes the current items. The in-memory state is kept even when the write fails.
// Callers must hold s.mu.
func (s *Store) persist(ctx context.Context, op string) error {
	err := s.write(ctx)
	if s.observe != nil {
		s.observe(op, err)
	}
	return err
}

func (s *Store) write(ctx context.Context) error {
	raw, err := Encode(s.items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.backing.Set(ctx, StorageKey, raw); err != nil {
		s.logg.Error(ctx, "persist cart", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}
