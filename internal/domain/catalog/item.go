// Package catalog models the orderable add-on catalog and the
// per-booking item selections priced by the valuation engine.
package catalog

import (
	"errors"
	"strings"
)

var (
	ErrInvalidItemID    = errors.New("item id is required")
	ErrInvalidItemName  = errors.New("item name is required")
	ErrInvalidUnitPrice = errors.New("unit price cannot be negative")
	ErrInvalidCategory  = errors.New("invalid catalog category")
)

// Item is an orderable add-on read from the catalog service. Immutable
// once constructed.
type Item struct {
	id         string
	name       string
	unitPrice  float64
	category   Category
	mealSlot   *string
	parentName *string
}

func NewItem(id, name string, unitPrice float64, category Category, mealSlot, parentName *string) (Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Item{}, ErrInvalidItemID
	}
	if strings.TrimSpace(name) == "" {
		return Item{}, ErrInvalidItemName
	}
	if unitPrice < 0 {
		return Item{}, ErrInvalidUnitPrice
	}
	if !category.IsValid() {
		return Item{}, ErrInvalidCategory
	}

	return Item{
		id:         id,
		name:       name,
		unitPrice:  unitPrice,
		category:   category,
		mealSlot:   mealSlot,
		parentName: parentName,
	}, nil
}

func (i Item) ID() string          { return i.id }
func (i Item) Name() string        { return i.name }
func (i Item) UnitPrice() float64  { return i.unitPrice }
func (i Item) Category() Category  { return i.category }
func (i Item) MealSlot() *string   { return i.mealSlot }
func (i Item) ParentName() *string { return i.parentName }

// withUnitPrice returns a price-adjusted copy; identity, category and
// grouping are untouched. Used by currency conversion only.
func (i Item) withUnitPrice(p float64) Item {
	i.unitPrice = p
	return i
}
