// Package store implements the cart store: it owns the shopper's cart
// aggregate, routes every mutation through it, notifies subscribers, and
// write-through persists the state after each change.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cfshr/aur/internal/domain"
	"github.com/cfshr/aur/internal/storage"
	apperrors "github.com/cfshr/aur/pkg/errors"
)

var (
	cartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total number of cart store mutations by operation",
		},
		[]string{"op"},
	)

	cartPersistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_persist_failures_total",
			Help: "Total number of failed cart state writes to storage",
		},
	)
)

// Store is the single owner of the shopper's cart state. All mutation goes
// through its methods; the backing items slice is never handed out.
//
// Mutations never fail: a storage write error degrades to in-memory operation
// for the current session (logged and counted, not returned). Subscribers
// registered via Subscribe are called synchronously after each mutation.
type Store struct {
	mu      sync.RWMutex
	cart    domain.Cart
	storage storage.Storage
	logger  *slog.Logger

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New creates a cart store backed by the given storage, restoring any
// previously persisted state. Missing state yields an empty cart; unreadable
// or corrupted state is discarded with a warning rather than failing startup.
func New(ctx context.Context, st storage.Storage, logger *slog.Logger) *Store {
	s := &Store{
		storage: st,
		logger:  logger,
		subs:    make(map[int]func()),
	}

	cart, err := st.Load(ctx)
	switch {
	case err == nil:
		s.cart = cart
	case errors.Is(err, apperrors.ErrNotFound):
		// First run on this device.
	default:
		logger.WarnContext(ctx, "discarding unreadable cart state",
			slog.String("error", err.Error()),
		)
	}

	return s
}

// AddItem merges an item into the cart (see domain.Cart.AddItem). Quantity and
// price are taken as supplied; keeping them in contract is the caller's job.
func (s *Store) AddItem(ctx context.Context, item domain.LineItem) {
	s.mutate(ctx, "add_item", func(c *domain.Cart) {
		c.AddItem(item)
	})

	s.logger.DebugContext(ctx, "item added to cart",
		slog.String("id", item.ID),
		slog.Int("quantity", item.Quantity),
	)
}

// RemoveItem deletes the item with the given ID; unknown IDs are a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mutate(ctx, "remove_item", func(c *domain.Cart) {
		c.RemoveItem(id)
	})
}

// UpdateQuantity sets an item's quantity, clamping values below 1 up to 1.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.mutate(ctx, "update_quantity", func(c *domain.Cart) {
		c.UpdateQuantity(id, quantity)
	})
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mutate(ctx, "clear", func(c *domain.Cart) {
		c.Clear()
	})

	s.logger.InfoContext(ctx, "cart cleared")
}

// Items returns a copy of the current line items for display.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone().Items
}

// TotalPrice returns the sum of price * quantity over the current items.
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalPrice()
}

// TotalItems returns the total unit count of the current items.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalItems()
}

// Subscribe registers fn to run after each mutation and returns an
// unsubscribe func. Callbacks read fresh state through the getters.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Reload replaces the in-memory state with whatever is currently persisted,
// last writer wins. It reconciles this process with state written by another
// window on the same device; missing or unreadable state leaves the current
// in-memory cart untouched.
func (s *Store) Reload(ctx context.Context) {
	cart, err := s.storage.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "cart state reload failed",
				slog.String("error", err.Error()),
			)
		}
		return
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()

	s.notify()
}

// mutate applies fn to the cart under lock, then persists a snapshot and
// notifies subscribers outside it.
func (s *Store) mutate(ctx context.Context, op string, fn func(*domain.Cart)) {
	s.mu.Lock()
	fn(&s.cart)
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	cartOperationsTotal.WithLabelValues(op).Inc()

	s.persist(ctx, snapshot)
	s.notify()
}

// persist writes the snapshot to storage. Failures are non-fatal: the cart
// keeps working for the current session and simply will not survive a restart.
func (s *Store) persist(ctx context.Context, snapshot domain.Cart) {
	if err := s.storage.Save(ctx, snapshot); err != nil {
		cartPersistFailuresTotal.Inc()
		s.logger.WarnContext(ctx, "cart state write failed",
			slog.String("error", err.Error()),
		)
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
