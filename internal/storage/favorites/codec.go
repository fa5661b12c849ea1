package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"ecommerce-shop/internal/domain"
	"ecommerce-shop/internal/kv"
)

// SchemaVersion tags the per-user favorites envelope.
const SchemaVersion = 1

type envelope struct {
	Favorites   []domain.FavoriteEntry `json:"favorites"`
	LastUpdated string                 `json:"lastUpdated"`
	Version     int                    `json:"version"`
}

// StorageKey returns the namespaced key the given user's favorites live
// under.
func StorageKey(userID string) string {
	return "favs_" + userID
}

// Codec reads and writes the per-user favorites envelope.
type Codec struct {
	store  kv.Store
	logger *log.Logger
	now    func() time.Time
}

func NewCodec(store kv.Store, logger *log.Logger) *Codec {
	return &Codec{store: store, logger: logger, now: time.Now}
}

// Load returns the user's favorite entries. Absence, corruption and
// version mismatch degrade to an empty list; a mismatched envelope is
// dropped from storage so it is not re-read on every call.
func (c *Codec) Load(ctx context.Context, userID string) []domain.FavoriteEntry {
	raw, err := c.store.Get(ctx, StorageKey(userID))
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			c.logger.Printf("load favorites for %s: %v", userID, err)
		}
		return []domain.FavoriteEntry{}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Printf("load favorites for %s: malformed envelope: %v", userID, err)
		return []domain.FavoriteEntry{}
	}
	if env.Version != SchemaVersion {
		c.logger.Printf("favorites storage version mismatch for %s, clearing data", userID)
		if err := c.Clear(ctx, userID); err != nil {
			c.logger.Printf("clear stale favorites for %s: %v", userID, err)
		}
		return []domain.FavoriteEntry{}
	}

	// Entries under favs_<userID> must all belong to that user; drop any
	// that do not rather than letting them leak across accounts.
	entries := make([]domain.FavoriteEntry, 0, len(env.Favorites))
	for _, entry := range env.Favorites {
		if entry.UserID != userID {
			c.logger.Printf("favorites for %s: dropping entry %s owned by %s", userID, entry.ID, entry.UserID)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// Save wraps the entries in a fresh envelope and writes it. Unlike the
// cart, a write failure here is reported to the caller so the user can
// be told the change may not persist.
func (c *Codec) Save(ctx context.Context, userID string, entries []domain.FavoriteEntry) error {
	env := envelope{
		Favorites:   entries,
		LastUpdated: c.now().UTC().Format(time.RFC3339),
		Version:     SchemaVersion,
	}
	if env.Favorites == nil {
		env.Favorites = []domain.FavoriteEntry{}
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, StorageKey(userID), raw); err != nil {
		c.logger.Printf("save favorites for %s: %v", userID, err)
		return err
	}
	return nil
}

// Clear removes the user's persisted envelope.
func (c *Codec) Clear(ctx context.Context, userID string) error {
	return c.store.Delete(ctx, StorageKey(userID))
}
