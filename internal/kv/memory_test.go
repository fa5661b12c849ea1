package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryGetMissingKey(t *testing.T) {
	store := NewMemory()
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestMemorySetGetDelete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("get: %s %v", got, err)
	}

	if err := store.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := store.Get(ctx, "k"); string(got) != "v2" {
		t.Fatalf("expected overwrite, got %s", got)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected key gone, got %v", err)
	}
	// Deleting again stays a no-op.
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	value := []byte("original")
	if err := store.Set(ctx, "k", value); err != nil {
		t.Fatalf("set: %v", err)
	}
	value[0] = 'X'

	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("stored value aliased caller's slice: %s", got)
	}
	got[0] = 'Y'
	again, _ := store.Get(ctx, "k")
	if string(again) != "original" {
		t.Fatalf("returned value aliased stored slice: %s", again)
	}
}
