package cart

import (
	"context"
	"log"
	"sync"

	"ecommerce-shop/internal/domain"
	"ecommerce-shop/internal/notify"
)

// Manager owns the in-memory cart aggregate. Every mutation recomputes
// the totals from the full item list, writes through to storage and
// hands observers a fresh snapshot. The manager is the single writer;
// the mutex keeps that true when mutations arrive from HTTP handlers.
type Manager struct {
	mu        sync.Mutex
	storage   storageCodec
	notifier  notify.Notifier
	logger    *log.Logger
	state     domain.CartState
	observers []func(domain.CartState)
}

type storageCodec interface {
	Load(ctx context.Context) domain.CartState
	Save(ctx context.Context, items []domain.LineItem) error
	Clear(ctx context.Context) error
}

// New seeds the manager from storage. Absent or unreadable persisted
// data yields an empty cart, never an error.
func New(ctx context.Context, storage storageCodec, notifier notify.Notifier, logger *log.Logger) *Manager {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Manager{
		storage:  storage,
		notifier: notifier,
		logger:   logger,
		state:    storage.Load(ctx),
	}
}

// Snapshot returns an immutable copy of the current aggregate.
func (m *Manager) Snapshot() domain.CartState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Subscribe registers an observer invoked with a snapshot after every
// mutation. Observers run outside the manager's lock.
func (m *Manager) Subscribe(fn func(domain.CartState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// AddItem merges the product into the cart: an existing line grows by
// quantity, otherwise a new line is appended with the product snapshot
// captured as-is.
func (m *Manager) AddItem(ctx context.Context, product domain.ProductSnapshot, quantity int) (domain.CartState, error) {
	if quantity <= 0 {
		return m.Snapshot(), domain.ErrInvalidQuantity
	}

	m.mu.Lock()
	items := m.state.Clone().Items
	merged := false
	for i, item := range items {
		if item.Product.ID == product.ID {
			newQty := item.Quantity + quantity
			items[i] = domain.LineItem{
				Product:        product,
				Quantity:       newQty,
				LineTotalCents: product.PriceCents * int64(newQty),
			}
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.LineItem{
			Product:        product,
			Quantity:       quantity,
			LineTotalCents: product.PriceCents * int64(quantity),
		})
	}
	snapshot := m.commit(ctx, items)
	m.mu.Unlock()

	if merged {
		m.notifier.Success(product.Name + " updated in cart")
	} else {
		m.notifier.Success(product.Name + " added to cart")
	}
	m.publish(snapshot)
	return snapshot, nil
}

// UpdateQuantity replaces the line's quantity and recomputes its total.
// A non-positive quantity means deletion and delegates to RemoveItem.
// An absent product id is reported, never turned into a phantom line.
func (m *Manager) UpdateQuantity(ctx context.Context, productID string, quantity int) (domain.CartState, error) {
	if quantity <= 0 {
		return m.RemoveItem(ctx, productID)
	}

	m.mu.Lock()
	items := m.state.Clone().Items
	found := false
	var name string
	for i, item := range items {
		if item.Product.ID == productID {
			items[i].Quantity = quantity
			items[i].LineTotalCents = item.Product.PriceCents * int64(quantity)
			name = item.Product.Name
			found = true
			break
		}
	}
	if !found {
		snapshot := m.state.Clone()
		m.mu.Unlock()
		return snapshot, domain.ErrNotFound
	}
	snapshot := m.commit(ctx, items)
	m.mu.Unlock()

	m.notifier.Success(name + " updated in cart")
	m.publish(snapshot)
	return snapshot, nil
}

// RemoveItem deletes the matching line. Removing an absent product id is
// a no-op, so removal is idempotent.
func (m *Manager) RemoveItem(ctx context.Context, productID string) (domain.CartState, error) {
	m.mu.Lock()
	items := m.state.Clone().Items
	var name string
	removed := false
	kept := items[:0]
	for _, item := range items {
		if item.Product.ID == productID {
			name = item.Product.Name
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		snapshot := m.state.Clone()
		m.mu.Unlock()
		return snapshot, nil
	}
	snapshot := m.commit(ctx, kept)
	m.mu.Unlock()

	m.notifier.Info(name + " removed from cart")
	m.publish(snapshot)
	return snapshot, nil
}

// Clear empties the cart and erases the persisted envelope.
func (m *Manager) Clear(ctx context.Context) (domain.CartState, error) {
	m.mu.Lock()
	m.state = domain.EmptyCart()
	if err := m.storage.Clear(ctx); err != nil {
		m.logger.Printf("clear cart storage: %v", err)
	}
	snapshot := m.state.Clone()
	m.mu.Unlock()

	m.notifier.Info("Cart cleared")
	m.publish(snapshot)
	return snapshot, nil
}

// Reload replaces the in-memory aggregate with whatever storage holds.
// Callers reconciling an external storage change can use this; nothing
// in the manager does it automatically.
func (m *Manager) Reload(ctx context.Context) domain.CartState {
	m.mu.Lock()
	m.state = m.storage.Load(ctx)
	snapshot := m.state.Clone()
	m.mu.Unlock()

	m.publish(snapshot)
	return snapshot
}

// commit recomputes the aggregate from the full item list and writes it
// through. A failed write is logged; the in-memory state stays
// authoritative for the session. Callers must hold the lock.
func (m *Manager) commit(ctx context.Context, items []domain.LineItem) domain.CartState {
	m.state = domain.ComputeCartState(items)
	if err := m.storage.Save(ctx, m.state.Items); err != nil {
		m.logger.Printf("save cart: %v", err)
	}
	return m.state.Clone()
}

func (m *Manager) publish(snapshot domain.CartState) {
	m.mu.Lock()
	observers := make([]func(domain.CartState), len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot.Clone())
	}
}
