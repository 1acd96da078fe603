//go:build unit || e2e

package builder

import (
	"resortly/internal/domain/catalog"
	"resortly/internal/usecase/shared"
)

type ItemBuilder struct {
	ID         string
	Name       string
	UnitPrice  float64
	Category   string
	MealSlot   *string
	ParentName *string
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ID:        "itm-pool-pass",
		Name:      "Pool Pass",
		UnitPrice: 100,
		Category:  "entertainments",
	}
}

func (b *ItemBuilder) BuildDomain() (catalog.Item, error) {
	category, err := catalog.NewCategory(b.Category)
	if err != nil {
		return catalog.Item{}, err
	}
	return catalog.NewItem(b.ID, b.Name, b.UnitPrice, category, b.MealSlot, b.ParentName)
}

func (b *ItemBuilder) BuildSnapshot() shared.ItemSnapshot {
	return shared.ItemSnapshot{
		ID:         b.ID,
		Name:       b.Name,
		UnitPrice:  b.UnitPrice,
		Category:   b.Category,
		MealSlot:   b.MealSlot,
		ParentName: b.ParentName,
	}
}

func (b *ItemBuilder) WithID(id string) *ItemBuilder {
	b.ID = id
	return b
}

func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.Name = name
	return b
}

func (b *ItemBuilder) WithUnitPrice(price float64) *ItemBuilder {
	b.UnitPrice = price
	return b
}

func (b *ItemBuilder) WithCategory(category string) *ItemBuilder {
	b.Category = category
	return b
}

func (b *ItemBuilder) WithMealSlot(mealSlot *string) *ItemBuilder {
	b.MealSlot = mealSlot
	return b
}

// MustBuildSelection assembles a selection of the given item/quantity
// pairs, panicking on invalid fixture data.
func MustBuildSelection(pairs ...SelectionPair) catalog.Selection {
	sel := catalog.NewSelection()
	for _, p := range pairs {
		item, err := p.Item.BuildDomain()
		if err != nil {
			panic(err)
		}
		if err := sel.Add(item, p.Quantity); err != nil {
			panic(err)
		}
	}
	return sel
}

type SelectionPair struct {
	Item     *ItemBuilder
	Quantity int
}
