package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"ecommerce-shop/internal/domain"
	"ecommerce-shop/internal/kv"
)

const (
	// StorageKey is the fixed key the cart envelope lives under.
	StorageKey = "ecommerce-cart"
	// SchemaVersion tags the envelope so incompatible persisted data can
	// be detected and discarded.
	SchemaVersion = "1.0"
)

type envelope struct {
	Version   string            `json:"version"`
	Items     []domain.LineItem `json:"items"`
	Timestamp int64             `json:"timestamp"`
}

// Codec reads and writes the versioned cart envelope. It holds no cart
// state of its own; the manager owns the in-memory aggregate.
type Codec struct {
	store  kv.Store
	logger *log.Logger
	now    func() time.Time
}

func NewCodec(store kv.Store, logger *log.Logger) *Codec {
	return &Codec{store: store, logger: logger, now: time.Now}
}

// Load reads the persisted envelope and folds it into an aggregate.
// Absence, corruption and version mismatch all degrade to the empty
// cart; nothing propagates past this boundary.
func (c *Codec) Load(ctx context.Context) domain.CartState {
	raw, err := c.store.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			c.logger.Printf("load cart: %v, resetting cart", err)
		}
		return domain.EmptyCart()
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Printf("load cart: malformed envelope: %v, resetting cart", err)
		return domain.EmptyCart()
	}
	if env.Version != SchemaVersion || env.Items == nil {
		c.logger.Printf("load cart: invalid cart data (version %q), resetting cart", env.Version)
		return domain.EmptyCart()
	}

	return domain.ComputeCartState(env.Items)
}

// Save wraps the items in a fresh envelope and writes it. The caller
// decides whether a write failure is fatal; for the cart it is not.
func (c *Codec) Save(ctx context.Context, items []domain.LineItem) error {
	env := envelope{
		Version:   SchemaVersion,
		Items:     items,
		Timestamp: c.now().UnixMilli(),
	}
	if env.Items == nil {
		env.Items = []domain.LineItem{}
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, StorageKey, raw)
}

// Clear removes the persisted envelope.
func (c *Codec) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, StorageKey)
}
