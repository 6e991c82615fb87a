package cart

import "hmade-storefront/internal/product"

// ItemID is the line id, or productID-detailID for rows the backend sent
// without one.
func ItemID(l Line) string {
	if l.ID != "" {
		return l.ID
	}
	return l.ProductID + "-" + l.DetailID
}

// Enrich joins raw lines with their products. Lines whose product is missing
// keep whatever the line itself carries.
func Enrich(lines []Line, products map[string]*product.Product) []Item {
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		it := Item{
			ID:        ItemID(l),
			ProductID: l.ProductID,
			DetailID:  l.DetailID,
			Color:     l.Color,
			Size:      l.Size,
			Quantity:  l.Quantity,
			Price:     l.Price,
		}

		if p := products[l.ProductID]; p != nil {
			it.ProductName = p.Name
			it.Image = p.Thumbnail()
			if d, ok := p.FindDetail(l.DetailID); ok {
				if it.Color == "" {
					it.Color = d.Color
				}
				if it.Size == "" {
					it.Size = d.Size
				}
			}
			if it.Price == 0 {
				it.Price = p.Price
			}
		}

		items = append(items, it)
	}
	return items
}

// Reconcile derives the displayed rows from the server rows and the quantities
// of mutations still in flight. A pending edit shadows the server quantity;
// once it settles the caller drops it and the server value shows again.
func Reconcile(server []Item, pending map[string]int) []Item {
	out := make([]Item, len(server))
	copy(out, server)
	for i := range out {
		if q, ok := pending[out[i].ID]; ok {
			out[i].Quantity = q
			out[i].Busy = true
		}
	}
	return out
}

// ComputeTotals folds the selected rows into price and quantity sums.
func ComputeTotals(items []Item, sel *Selection) Totals {
	var t Totals
	for _, it := range items {
		if !sel.Has(it.ID) {
			continue
		}
		t.SelectedCount++
		t.TotalItems += it.Quantity
		t.TotalPrice += it.Price.Mul(it.Quantity)
	}
	return t
}
