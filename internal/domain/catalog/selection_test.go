//go:build unit

package catalog_test

import (
	"testing"

	"resortly/internal/domain/catalog"
	"resortly/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, id string, price float64, category string) catalog.Item {
	t.Helper()
	item, err := builder.NewItemBuilder().WithID(id).WithUnitPrice(price).WithCategory(category).BuildDomain()
	require.NoError(t, err)
	return item
}

func TestSelectionAdd(t *testing.T) {
	t.Run("rejects quantity below one", func(t *testing.T) {
		sel := catalog.NewSelection()
		item := mustItem(t, "itm-1", 50, "rides")

		assert.ErrorIs(t, sel.Add(item, 0), catalog.ErrInvalidQuantity)
		assert.ErrorIs(t, sel.Add(item, -3), catalog.ErrInvalidQuantity)
		assert.True(t, sel.IsEmpty())
	})

	t.Run("re-adding the same item accumulates quantity", func(t *testing.T) {
		sel := catalog.NewSelection()
		item := mustItem(t, "itm-1", 50, "rides")

		require.NoError(t, sel.Add(item, 2))
		require.NoError(t, sel.Add(item, 3))

		assert.Equal(t, 5, sel.Quantity(catalog.CategoryRides, "itm-1"))
		assert.Len(t, sel.Lines(), 1)
	})

	t.Run("same id in different categories stays separate", func(t *testing.T) {
		sel := catalog.NewSelection()
		require.NoError(t, sel.Add(mustItem(t, "itm-1", 50, "rides"), 1))
		require.NoError(t, sel.Add(mustItem(t, "itm-1", 80, "restaurants"), 1))

		assert.Len(t, sel.Lines(), 2)
		assert.Equal(t, 1, sel.Quantity(catalog.CategoryRides, "itm-1"))
		assert.Equal(t, 1, sel.Quantity(catalog.CategoryRestaurants, "itm-1"))
	})
}

func TestSelectionLineTotal(t *testing.T) {
	t.Run("sums unit price times quantity across categories", func(t *testing.T) {
		sel := catalog.NewSelection()
		require.NoError(t, sel.Add(mustItem(t, "itm-1", 100, "rides"), 2))
		require.NoError(t, sel.Add(mustItem(t, "itm-2", 49.99, "restaurants"), 3))

		assert.InDelta(t, 349.97, sel.LineTotal(), 1e-9)
	})

	t.Run("empty selection totals zero", func(t *testing.T) {
		sel := catalog.NewSelection()
		assert.Zero(t, sel.LineTotal())
	})
}

func TestSelectionConvertCurrency(t *testing.T) {
	t.Run("rejects non-positive rates", func(t *testing.T) {
		sel := catalog.NewSelection()
		require.NoError(t, sel.Add(mustItem(t, "itm-1", 100, "rides"), 1))

		_, err := sel.ConvertCurrency(0)
		assert.ErrorIs(t, err, catalog.ErrInvalidRate)
		_, err = sel.ConvertCurrency(-1.5)
		assert.ErrorIs(t, err, catalog.ErrInvalidRate)
	})

	t.Run("rate one is a no-op on totals", func(t *testing.T) {
		sel := catalog.NewSelection()
		require.NoError(t, sel.Add(mustItem(t, "itm-1", 123.45, "rides"), 2))

		converted, err := sel.ConvertCurrency(1.0)
		require.NoError(t, err)
		assert.InDelta(t, sel.LineTotal(), converted.LineTotal(), 1e-9)
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		sel := catalog.NewSelection()
		require.NoError(t, sel.Add(mustItem(t, "itm-1", 100, "rides"), 1))

		converted, err := sel.ConvertCurrency(1.5)
		require.NoError(t, err)

		assert.InDelta(t, 100, sel.LineTotal(), 1e-9)
		assert.InDelta(t, 150, converted.LineTotal(), 1e-9)
	})

	t.Run("rounds per unit price", func(t *testing.T) {
		sel := catalog.NewSelection()
		require.NoError(t, sel.Add(mustItem(t, "itm-1", 33.333, "rides"), 3))

		converted, err := sel.ConvertCurrency(1.0)
		require.NoError(t, err)
		// 33.33 per unit after conversion rounding, times 3.
		assert.InDelta(t, 99.99, converted.LineTotal(), 1e-9)
	})
}

func TestSubtotal(t *testing.T) {
	primary := catalog.NewSelection()
	require.NoError(t, primary.Add(mustItem(t, "itm-1", 100, "rides"), 2))
	addOns := catalog.NewSelection()
	require.NoError(t, addOns.Add(mustItem(t, "itm-2", 25.5, "restaurants"), 1))

	assert.InDelta(t, 225.5, catalog.Subtotal(primary, addOns), 1e-9)
	assert.Zero(t, catalog.Subtotal())
}

func TestLinesStableOrder(t *testing.T) {
	sel := catalog.NewSelection()
	require.NoError(t, sel.Add(mustItem(t, "itm-b", 10, "rides"), 1))
	require.NoError(t, sel.Add(mustItem(t, "itm-a", 10, "rides"), 1))
	require.NoError(t, sel.Add(mustItem(t, "itm-z", 10, "restaurants"), 1))

	var got []string
	for _, line := range sel.Lines() {
		got = append(got, line.Item().ID())
	}
	// Category order first (restaurants before rides), then id order.
	assert.Equal(t, []string{"itm-z", "itm-a", "itm-b"}, got)
}
