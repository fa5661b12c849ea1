package domain

// ProductSnapshot is the immutable copy of product identity and price
// captured when a product enters the cart. The cart never re-fetches a
// live price; totals are always computed from the snapshot.
type ProductSnapshot struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Brand      string `json:"brand,omitempty"`
	PriceCents int64  `json:"priceCents"`
}
