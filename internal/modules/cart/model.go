package cart

import "github.com/wearlyshop/wearly-backend/internal/modules/catalog"

// Item is one cart line, identified by the (product id, size) pair.
type Item struct {
	Product  *catalog.Product `json:"product"`
	Size     string           `json:"size"`
	Quantity int              `json:"quantity"`
}

// LineTotal is the item's effective unit price times its quantity.
func (i Item) LineTotal() float64 {
	return i.Product.EffectivePrice() * float64(i.Quantity)
}

// State is the full cart: line items in insertion order plus two scalars
// derived from them. Total and ItemCount are recomputed from Items on every
// transition and never mutated independently.
type State struct {
	Items     []Item  `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// Empty returns a cart with no items.
func Empty() State {
	return State{Items: []Item{}}
}

// recompute derives Total and ItemCount from scratch. Deriving rather than
// adjusting incrementally keeps the scalars from drifting.
func recompute(items []Item) State {
	s := State{Items: items}
	for _, it := range items {
		s.Total += it.LineTotal()
		s.ItemCount += it.Quantity
	}
	return s
}

func findItem(items []Item, productID, size string) int {
	for i, it := range items {
		if it.Product.ID.String() == productID && it.Size == size {
			return i
		}
	}
	return -1
}
