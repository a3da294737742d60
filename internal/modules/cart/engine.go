package cart

import "github.com/wearlyshop/wearly-backend/internal/modules/catalog"

// Transition is one of the four cart mutations. Apply dispatches on the
// concrete variant; the transition functions are pure and perform no I/O.
type Transition interface {
	isTransition()
}

// AddItem adds one unit of (product, size), incrementing the quantity when
// the line already exists.
type AddItem struct {
	Product *catalog.Product
	Size    string
}

// RemoveItem deletes the (product id, size) line if present.
type RemoveItem struct {
	ProductID string
	Size      string
}

// SetQuantity writes an absolute quantity for an existing line. Zero is
// equivalent to RemoveItem.
type SetQuantity struct {
	ProductID string
	Size      string
	Quantity  int
}

// Clear resets the cart to empty.
type Clear struct{}

func (AddItem) isTransition()     {}
func (RemoveItem) isTransition()  {}
func (SetQuantity) isTransition() {}
func (Clear) isTransition()       {}

// Apply returns the cart state after the transition. The input state is not
// modified. Transitions that would exceed declared stock are silent no-ops:
// the engine is the final gate, callers surface remaining stock to users.
func Apply(state State, t Transition) State {
	switch tr := t.(type) {
	case AddItem:
		return applyAdd(state, tr)
	case RemoveItem:
		return applyRemove(state, tr)
	case SetQuantity:
		return applySetQuantity(state, tr)
	case Clear:
		return Empty()
	default:
		return state
	}
}

func applyAdd(state State, t AddItem) State {
	stock := t.Product.StockFor(t.Size)
	idx := findItem(state.Items, t.Product.ID.String(), t.Size)

	if idx >= 0 {
		if state.Items[idx].Quantity+1 > stock {
			return state
		}
		items := cloneItems(state.Items)
		items[idx].Quantity++
		return recompute(items)
	}

	if stock < 1 {
		return state
	}
	items := cloneItems(state.Items)
	items = append(items, Item{Product: t.Product, Size: t.Size, Quantity: 1})
	return recompute(items)
}

func applyRemove(state State, t RemoveItem) State {
	idx := findItem(state.Items, t.ProductID, t.Size)
	if idx < 0 {
		return state
	}
	items := make([]Item, 0, len(state.Items)-1)
	items = append(items, state.Items[:idx]...)
	items = append(items, state.Items[idx+1:]...)
	return recompute(items)
}

func applySetQuantity(state State, t SetQuantity) State {
	if t.Quantity <= 0 {
		return applyRemove(state, RemoveItem{ProductID: t.ProductID, Size: t.Size})
	}
	idx := findItem(state.Items, t.ProductID, t.Size)
	if idx < 0 {
		return state
	}
	stock := state.Items[idx].Product.StockFor(t.Size)
	if stock < 1 {
		return state
	}
	qty := t.Quantity
	if qty > stock {
		qty = stock
	}
	items := cloneItems(state.Items)
	items[idx].Quantity = qty
	return recompute(items)
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
