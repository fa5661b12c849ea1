package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no value exists under the key.
var ErrKeyNotFound = errors.New("key not found")

// Store is the local key-value storage the cart and favorites envelopes
// are written through. Backends only distinguish "absent" from "failed";
// envelope validation belongs to the codecs on top.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
