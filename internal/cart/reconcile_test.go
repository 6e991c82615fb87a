package cart

import (
	"testing"

	"hmade-storefront/internal/money"
	"hmade-storefront/internal/product"

	"github.com/stretchr/testify/assert"
)

func twoLineItems() []Item {
	return []Item{
		{ID: "A", ProductID: "p1", Quantity: 2, Price: money.VND(50000)},
		{ID: "B", ProductID: "p2", Quantity: 1, Price: money.VND(30000)},
	}
}

func TestEnrich(t *testing.T) {
	products := map[string]*product.Product{
		"p1": {
			ID:    "p1",
			Name:  "Linen shirt",
			Price: money.VND(250000),
			Images: []product.Image{
				{URL: "https://cdn/full.jpg", ThumbnailURL: "https://cdn/thumb.jpg"},
			},
			ProductDetails: []product.Detail{{ID: "d1", Color: "blue", Size: "M"}},
		},
		"p2": {
			ID:      "p2",
			Name:    "Tote",
			Price:   money.VND(90000),
			Images:  []product.Image{{URL: "https://cdn/tote.jpg"}},
			Details: []product.Detail{{ID: "d2", Color: "beige", Size: "L"}},
		},
	}

	t.Run("Joins product fields", func(t *testing.T) {
		items := Enrich([]Line{{ID: "l1", ProductID: "p1", DetailID: "d1", Quantity: 2}}, products)

		assert.Len(t, items, 1)
		assert.Equal(t, Item{
			ID:          "l1",
			ProductID:   "p1",
			DetailID:    "d1",
			ProductName: "Linen shirt",
			Image:       "https://cdn/thumb.jpg",
			Color:       "blue",
			Size:        "M",
			Quantity:    2,
			Price:       money.VND(250000),
		}, items[0])
	})

	t.Run("Line values win over product values", func(t *testing.T) {
		items := Enrich([]Line{{
			ID: "l2", ProductID: "p2", DetailID: "d2", Quantity: 1,
			Price: money.VND(80000), Color: "black",
		}}, products)

		assert.Equal(t, money.VND(80000), items[0].Price)
		assert.Equal(t, "black", items[0].Color)
		assert.Equal(t, "L", items[0].Size)
		assert.Equal(t, "https://cdn/tote.jpg", items[0].Image)
	})

	t.Run("Missing id and product", func(t *testing.T) {
		items := Enrich([]Line{{ProductID: "px", DetailID: "dx", Quantity: 3}}, products)

		assert.Equal(t, "px-dx", items[0].ID)
		assert.Equal(t, money.VND(0), items[0].Price)
		assert.Empty(t, items[0].ProductName)
	})
}

func TestReconcile(t *testing.T) {
	server := twoLineItems()

	t.Run("Pending edit shadows server quantity", func(t *testing.T) {
		out := Reconcile(server, map[string]int{"A": 5})

		assert.Equal(t, 5, out[0].Quantity)
		assert.True(t, out[0].Busy)
		assert.Equal(t, 1, out[1].Quantity)
		assert.False(t, out[1].Busy)
		assert.Equal(t, 2, server[0].Quantity, "input must not be mutated")
	})

	t.Run("No pending edits shows server state", func(t *testing.T) {
		assert.Equal(t, server, Reconcile(server, nil))
	})

	t.Run("Edits for unknown rows are ignored", func(t *testing.T) {
		assert.Equal(t, server, Reconcile(server, map[string]int{"gone": 9}))
	})
}

func TestComputeTotals(t *testing.T) {
	items := twoLineItems()

	t.Run("Only A selected", func(t *testing.T) {
		sel := NewSelection()
		sel.Toggle("A")

		totals := ComputeTotals(items, sel)
		assert.Equal(t, 2, totals.TotalItems)
		assert.Equal(t, money.VND(100000), totals.TotalPrice)
		assert.Equal(t, 1, totals.SelectedCount)
	})

	t.Run("Both selected", func(t *testing.T) {
		sel := NewSelection()
		sel.SelectAll([]string{"A", "B"}, true)

		totals := ComputeTotals(items, sel)
		assert.Equal(t, 3, totals.TotalItems)
		assert.Equal(t, money.VND(130000), totals.TotalPrice)
		assert.Equal(t, "130.000₫", totals.TotalPrice.String())
	})

	t.Run("Idempotent", func(t *testing.T) {
		sel := NewSelection()
		sel.SelectAll([]string{"A", "B"}, true)

		assert.Equal(t, ComputeTotals(items, sel), ComputeTotals(items, sel))
	})

	t.Run("Nothing selected", func(t *testing.T) {
		assert.Equal(t, Totals{}, ComputeTotals(items, NewSelection()))
	})
}

func TestSelection(t *testing.T) {
	ids := []string{"A", "B", "C"}

	t.Run("Select all then none", func(t *testing.T) {
		sel := NewSelection()
		sel.Toggle("B")

		sel.SelectAll(ids, true)
		assert.Equal(t, ids, sel.IDs(ids))

		sel.SelectAll(ids, false)
		assert.Equal(t, 0, sel.Len())
		assert.Empty(t, sel.IDs(ids))
	})

	t.Run("Toggle", func(t *testing.T) {
		sel := NewSelection()
		assert.True(t, sel.Toggle("A"))
		assert.False(t, sel.Toggle("A"))
		assert.False(t, sel.Has("A"))
	})

	t.Run("Prune keeps live ids", func(t *testing.T) {
		sel := NewSelection()
		sel.SelectAll(ids, true)

		sel.Prune([]string{"C", "A"})
		assert.Equal(t, []string{"A", "C"}, sel.IDs(ids))
	})

	t.Run("Nil selection has nothing", func(t *testing.T) {
		var sel *Selection
		assert.False(t, sel.Has("A"))
	})
}
