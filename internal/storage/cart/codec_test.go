package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"ecommerce-shop/internal/domain"
	"ecommerce-shop/internal/kv"
)

type failingStore struct {
	getErr error
	setErr error
	delErr error
}

func (s *failingStore) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, s.getErr
}

func (s *failingStore) Set(_ context.Context, _ string, _ []byte) error {
	return s.setErr
}

func (s *failingStore) Delete(_ context.Context, _ string) error {
	return s.delErr
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func sampleItems() []domain.LineItem {
	return []domain.LineItem{
		{
			Product:        domain.ProductSnapshot{ID: "p1", Name: "Keyboard", Category: "peripherals", PriceCents: 2500},
			Quantity:       1,
			LineTotalCents: 2500,
		},
		{
			Product:        domain.ProductSnapshot{ID: "p2", Name: "Mouse", Category: "peripherals", Brand: "acme", PriceCents: 1000},
			Quantity:       3,
			LineTotalCents: 3000,
		},
	}
}

func TestLoadAbsentReturnsEmptyCart(t *testing.T) {
	codec := NewCodec(kv.NewMemory(), testLogger())

	state := codec.Load(context.Background())

	if len(state.Items) != 0 || state.SubtotalCents != 0 || state.ItemCount != 0 {
		t.Fatalf("expected empty cart, got %+v", state)
	}
	if state.Items == nil {
		t.Fatalf("expected non-nil items slice")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := kv.NewMemory()
	codec := NewCodec(store, testLogger())
	ctx := context.Background()

	if err := codec.Save(ctx, sampleItems()); err != nil {
		t.Fatalf("save: %v", err)
	}

	state := codec.Load(ctx)
	if len(state.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(state.Items))
	}
	if state.Items[0].Product.ID != "p1" || state.Items[1].Product.ID != "p2" {
		t.Fatalf("item order not preserved: %+v", state.Items)
	}
	if state.Items[1].Quantity != 3 || state.Items[1].Product.PriceCents != 1000 {
		t.Fatalf("quantity or price not preserved: %+v", state.Items[1])
	}
	if state.SubtotalCents != 5500 {
		t.Fatalf("expected subtotal 5500, got %d", state.SubtotalCents)
	}
	if state.ItemCount != 4 {
		t.Fatalf("expected item count 4, got %d", state.ItemCount)
	}
}

func TestSaveWritesVersionedEnvelope(t *testing.T) {
	store := kv.NewMemory()
	codec := NewCodec(store, testLogger())
	codec.now = func() time.Time { return time.UnixMilli(1700000000000) }
	ctx := context.Background()

	if err := codec.Save(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := store.Get(ctx, StorageKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if string(env["version"]) != `"1.0"` {
		t.Fatalf("expected version \"1.0\", got %s", env["version"])
	}
	if string(env["items"]) != `[]` {
		t.Fatalf("expected empty items array, got %s", env["items"])
	}
	if string(env["timestamp"]) != "1700000000000" {
		t.Fatalf("expected timestamp 1700000000000, got %s", env["timestamp"])
	}
}

func TestLoadCorruptPayloadReturnsEmptyCart(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	if err := store.Set(ctx, StorageKey, []byte("{not json")); err != nil {
		t.Fatalf("set: %v", err)
	}

	state := NewCodec(store, testLogger()).Load(ctx)
	if len(state.Items) != 0 || state.SubtotalCents != 0 {
		t.Fatalf("expected empty cart on corrupt payload, got %+v", state)
	}
}

func TestLoadVersionMismatchReturnsEmptyCart(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	payload := `{"version":"0.9","items":[{"product":{"id":"p1","priceCents":100},"quantity":1,"lineTotalCents":100}],"timestamp":1}`
	if err := store.Set(ctx, StorageKey, []byte(payload)); err != nil {
		t.Fatalf("set: %v", err)
	}

	state := NewCodec(store, testLogger()).Load(ctx)
	if len(state.Items) != 0 {
		t.Fatalf("expected stale version to be discarded, got %+v", state)
	}
}

func TestLoadNonArrayItemsReturnsEmptyCart(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	for _, payload := range []string{
		`{"version":"1.0","items":5,"timestamp":1}`,
		`{"version":"1.0","items":null,"timestamp":1}`,
		`{"version":"1.0","timestamp":1}`,
	} {
		if err := store.Set(ctx, StorageKey, []byte(payload)); err != nil {
			t.Fatalf("set: %v", err)
		}
		state := NewCodec(store, testLogger()).Load(ctx)
		if len(state.Items) != 0 || state.ItemCount != 0 {
			t.Fatalf("payload %s: expected empty cart, got %+v", payload, state)
		}
	}
}

func TestLoadBackendFailureReturnsEmptyCart(t *testing.T) {
	codec := NewCodec(&failingStore{getErr: errors.New("backend down")}, testLogger())

	state := codec.Load(context.Background())
	if len(state.Items) != 0 {
		t.Fatalf("expected empty cart on backend failure, got %+v", state)
	}
}

func TestSaveReturnsBackendError(t *testing.T) {
	codec := NewCodec(&failingStore{setErr: errors.New("quota exceeded")}, testLogger())

	if err := codec.Save(context.Background(), sampleItems()); err == nil {
		t.Fatalf("expected save error")
	}
}

func TestClearRemovesEnvelope(t *testing.T) {
	store := kv.NewMemory()
	codec := NewCodec(store, testLogger())
	ctx := context.Background()

	if err := codec.Save(ctx, sampleItems()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := codec.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Get(ctx, StorageKey); !errors.Is(err, kv.ErrKeyNotFound) {
		t.Fatalf("expected envelope removed, got %v", err)
	}
}
