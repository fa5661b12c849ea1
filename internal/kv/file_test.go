package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetGetDelete(t *testing.T) {
	store, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Get(ctx, "ecommerce-cart"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := store.Set(ctx, "ecommerce-cart", []byte(`{"version":"1.0"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, "ecommerce-cart")
	if err != nil || string(got) != `{"version":"1.0"}` {
		t.Fatalf("get: %s %v", got, err)
	}

	if err := store.Delete(ctx, "ecommerce-cart"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "ecommerce-cart"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected key gone, got %v", err)
	}
	if err := store.Delete(ctx, "ecommerce-cart"); err != nil {
		t.Fatalf("deleting an absent key: %v", err)
	}
}

func TestFileSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFile(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := store.Set(ctx, "favs_u1", []byte(`{"version":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := NewFile(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get(ctx, "favs_u1")
	if err != nil || string(got) != `{"version":1}` {
		t.Fatalf("expected value to survive reopen, got %s %v", got, err)
	}
}

func TestFileSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFile(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if err := store.Set(ctx, "favs_../../etc/passwd", []byte("x")); err != nil {
		t.Fatalf("set: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file in storage dir, got %d", len(entries))
	}
	if filepath.Dir(filepath.Join(dir, entries[0].Name())) != dir {
		t.Fatalf("file escaped storage dir: %s", entries[0].Name())
	}
}
