package favorites

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"ecommerce-shop/internal/domain"
	"ecommerce-shop/internal/identity"
	"ecommerce-shop/internal/notify"
)

// Manager owns the current user's favorites set. All operations resolve
// the user through the identity provider; without an authenticated user
// reads answer empty and mutations are inert, reported with a warning.
//
// Mutations persist before the in-memory set is updated, so a storage
// write failure leaves memory and storage consistent and surfaces to the
// caller. Losing a favorite silently is worse than losing a cart save.
type Manager struct {
	mu       sync.Mutex
	storage  storageCodec
	identity identity.Provider
	notifier notify.Notifier
	logger   *log.Logger
	newID    func() string
	now      func() time.Time

	// entries cached for loadedFor; reloaded when the user changes.
	loadedFor string
	loaded    bool
	entries   []domain.FavoriteEntry
}

type storageCodec interface {
	Load(ctx context.Context, userID string) []domain.FavoriteEntry
	Save(ctx context.Context, userID string, entries []domain.FavoriteEntry) error
	Clear(ctx context.Context, userID string) error
}

func New(storage storageCodec, provider identity.Provider, notifier notify.Notifier, logger *log.Logger) *Manager {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Manager{
		storage:  storage,
		identity: provider,
		notifier: notifier,
		logger:   logger,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Snapshot returns an immutable copy of the current user's favorites.
// Without an authenticated user it is empty.
func (m *Manager) Snapshot(ctx context.Context) domain.FavoritesState {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.resolve(ctx)
	if !ok {
		return domain.FavoritesState{Entries: []domain.FavoriteEntry{}}
	}
	entries := make([]domain.FavoriteEntry, len(m.entries))
	copy(entries, m.entries)
	return domain.FavoritesState{UserID: userID, Entries: entries, Count: len(entries)}
}

// IsFavorite reports whether the current user has favorited the product.
func (m *Manager) IsFavorite(ctx context.Context, productID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resolve(ctx); !ok {
		return false
	}
	return m.index(productID) >= 0
}

// Count returns the size of the current user's favorites set.
func (m *Manager) Count(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resolve(ctx); !ok {
		return 0
	}
	return len(m.entries)
}

// AddFavorite creates an entry for the product. Adding a product that is
// already favorited is invalid; callers are expected to check IsFavorite
// or use ToggleFavorite.
func (m *Manager) AddFavorite(ctx context.Context, productID string) (domain.FavoriteEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.resolve(ctx)
	if !ok {
		m.logger.Printf("cannot add favorite %s: no authenticated user", productID)
		return domain.FavoriteEntry{}, domain.ErrUnauthenticated
	}
	return m.add(ctx, userID, productID)
}

// RemoveFavorite deletes the product's entry and reports whether the set
// changed. Removing an absent product returns false without error.
func (m *Manager) RemoveFavorite(ctx context.Context, productID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.resolve(ctx)
	if !ok {
		m.logger.Printf("cannot remove favorite %s: no authenticated user", productID)
		return false, domain.ErrUnauthenticated
	}
	return m.remove(ctx, userID, productID)
}

// ToggleFavorite removes the product if favorited, otherwise adds it. It
// returns the resulting membership state and, when added, the new entry.
// The in-memory update and the persist are one logical operation under
// the manager's lock.
func (m *Manager) ToggleFavorite(ctx context.Context, productID string) (bool, *domain.FavoriteEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.resolve(ctx)
	if !ok {
		m.logger.Printf("cannot toggle favorite %s: no authenticated user", productID)
		return false, nil, domain.ErrUnauthenticated
	}

	if m.index(productID) >= 0 {
		if _, err := m.remove(ctx, userID, productID); err != nil {
			return true, nil, err
		}
		return false, nil, nil
	}

	entry, err := m.add(ctx, userID, productID)
	if err != nil {
		return false, nil, err
	}
	return true, &entry, nil
}

// ClearFavorites removes every entry and the persisted envelope for the
// current user.
func (m *Manager) ClearFavorites(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.resolve(ctx)
	if !ok {
		m.logger.Printf("cannot clear favorites: no authenticated user")
		return domain.ErrUnauthenticated
	}
	if err := m.storage.Clear(ctx, userID); err != nil {
		m.logger.Printf("clear favorites for %s: %v", userID, err)
		return err
	}
	m.entries = []domain.FavoriteEntry{}
	m.notifier.Info("Favorites cleared")
	return nil
}

// Reload discards the cached set and re-reads storage for the current
// user.
func (m *Manager) Reload(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = false
	m.resolve(ctx)
}

// resolve returns the current user and lazily loads their entries. The
// cache follows the identity provider: switching users reloads, logging
// out drops the set. Callers must hold the lock.
func (m *Manager) resolve(ctx context.Context) (string, bool) {
	userID, ok := m.identity.CurrentUserID(ctx)
	if !ok {
		m.loadedFor = ""
		m.loaded = false
		m.entries = nil
		return "", false
	}
	if !m.loaded || m.loadedFor != userID {
		m.entries = m.storage.Load(ctx, userID)
		m.loadedFor = userID
		m.loaded = true
	}
	return userID, true
}

func (m *Manager) index(productID string) int {
	for i, entry := range m.entries {
		if entry.ProductID == productID {
			return i
		}
	}
	return -1
}

// add persists first, then commits in memory, so a failed write never
// leaves a favorite that exists only in this session.
func (m *Manager) add(ctx context.Context, userID, productID string) (domain.FavoriteEntry, error) {
	if m.index(productID) >= 0 {
		return domain.FavoriteEntry{}, domain.ErrDuplicateFavorite
	}
	entry := domain.FavoriteEntry{
		ID:        m.newID(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: m.now().UTC(),
	}
	updated := append(append([]domain.FavoriteEntry{}, m.entries...), entry)
	if err := m.storage.Save(ctx, userID, updated); err != nil {
		m.notifier.Error("Failed to save favorites. Storage may be full.")
		return domain.FavoriteEntry{}, err
	}
	m.entries = updated
	m.notifier.Success("Added to favorites")
	return entry, nil
}

func (m *Manager) remove(ctx context.Context, userID, productID string) (bool, error) {
	idx := m.index(productID)
	if idx < 0 {
		return false, nil
	}
	updated := make([]domain.FavoriteEntry, 0, len(m.entries)-1)
	updated = append(updated, m.entries[:idx]...)
	updated = append(updated, m.entries[idx+1:]...)
	if err := m.storage.Save(ctx, userID, updated); err != nil {
		m.notifier.Error("Failed to save favorites. Storage may be full.")
		return false, err
	}
	m.entries = updated
	m.notifier.Info("Removed from favorites")
	return true, nil
}
