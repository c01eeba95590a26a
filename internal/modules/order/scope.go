package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScopeForStore projects a list of orders down to one store's view: each
// order keeps only the line items whose product currently belongs to the
// store, the view's total is recomputed from that subset, and orders with no
// matching items are dropped. The projection never mutates its inputs and
// preserves item and order ordering.
//
// owners maps product id to owning store id; products absent from the map
// (deleted, or unscoped) belong to no store.
func ScopeForStore(orders []*Order, owners map[uuid.UUID]uuid.UUID, storeID uuid.UUID) []*Order {
	scoped := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if view, ok := scopeOne(o, owners, storeID); ok {
			scoped = append(scoped, view)
		}
	}
	return scoped
}

func scopeOne(o *Order, owners map[uuid.UUID]uuid.UUID, storeID uuid.UUID) (*Order, bool) {
	var items []Item
	total := decimal.Zero
	for _, it := range o.Items {
		if owners[it.ProductID] != storeID {
			continue
		}
		items = append(items, it)
		total = total.Add(it.Extension())
	}
	if len(items) == 0 {
		return nil, false
	}
	view := *o
	view.Items = items
	view.Total = total
	return &view, true
}
