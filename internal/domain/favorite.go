package domain

import "time"

// FavoriteEntry records that one user favorited one product. At most one
// entry may exist per (UserID, ProductID) pair.
type FavoriteEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FavoritesState is the snapshot of one user's favorites handed to
// consumers.
type FavoritesState struct {
	UserID  string          `json:"userId"`
	Entries []FavoriteEntry `json:"entries"`
	Count   int             `json:"count"`
}
