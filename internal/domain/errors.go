package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidQuantity indicates a non-positive quantity was passed to
	// an operation that requires a positive one.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrDuplicateFavorite indicates the product is already favorited by
	// this user.
	ErrDuplicateFavorite = errors.New("product is already in favorites")

	// ErrUnauthenticated indicates a favorites mutation was attempted
	// without an authenticated user.
	ErrUnauthenticated = errors.New("no authenticated user")
)
