package domain

// LineItem is one product entry in the cart. LineTotalCents is a cached
// derived value equal to Product.PriceCents * Quantity; it is recomputed
// on every mutation, never adjusted independently.
type LineItem struct {
	Product        ProductSnapshot `json:"product"`
	Quantity       int             `json:"quantity"`
	LineTotalCents int64           `json:"lineTotalCents"`
}

// CartState is the cart aggregate handed to consumers: the ordered line
// items (unique by product id) together with totals folded from them.
type CartState struct {
	Items         []LineItem `json:"items"`
	SubtotalCents int64      `json:"subtotalCents"`
	ItemCount     int        `json:"itemCount"`
}

// EmptyCart returns the zero aggregate with a non-nil item slice.
func EmptyCart() CartState {
	return CartState{Items: []LineItem{}}
}

// ComputeCartState folds a raw item list into an aggregate. Both the
// storage codec and the manager derive totals through this single path.
func ComputeCartState(items []LineItem) CartState {
	state := CartState{Items: items}
	if state.Items == nil {
		state.Items = []LineItem{}
	}
	for _, item := range state.Items {
		state.SubtotalCents += item.LineTotalCents
		state.ItemCount += item.Quantity
	}
	return state
}

// Clone returns a deep copy so callers can hold a snapshot without
// aliasing the manager's internal slice.
func (s CartState) Clone() CartState {
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	return CartState{
		Items:         items,
		SubtotalCents: s.SubtotalCents,
		ItemCount:     s.ItemCount,
	}
}
