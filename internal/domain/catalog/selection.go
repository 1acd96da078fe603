package catalog

import (
	"errors"
	"sort"

	"resortly/internal/pkg/money"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidRate     = errors.New("exchange rate must be positive")
)

// Line is one selected item with its quantity.
type Line struct {
	item     Item
	quantity int
}

func (l Line) Item() Item    { return l.item }
func (l Line) Quantity() int { return l.quantity }

func (l Line) Total() float64 {
	return money.Round2(l.item.unitPrice * float64(l.quantity))
}

// Selection maps, per category, item ids to their ordered quantity.
// Item ids are unique within a category; re-adding an id accumulates
// quantity rather than duplicating the line. A booking carries two
// selections of identical shape: the primary order and the post-booking
// add-ons.
type Selection struct {
	lines map[Category]map[string]Line
}

func NewSelection() Selection {
	return Selection{lines: make(map[Category]map[string]Line)}
}

// Add records quantity units of item. Zero and negative quantities are
// rejected, never clamped.
func (s *Selection) Add(item Item, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if s.lines == nil {
		s.lines = make(map[Category]map[string]Line)
	}

	byID, ok := s.lines[item.category]
	if !ok {
		byID = make(map[string]Line)
		s.lines[item.category] = byID
	}

	line := byID[item.id]
	line.item = item
	line.quantity += quantity
	byID[item.id] = line
	return nil
}

func (s Selection) IsEmpty() bool {
	for _, byID := range s.lines {
		if len(byID) > 0 {
			return false
		}
	}
	return true
}

func (s Selection) Quantity(category Category, itemID string) int {
	return s.lines[category][itemID].quantity
}

// Lines returns every line in stable category order. The slice is a
// copy; mutating it does not touch the selection.
func (s Selection) Lines() []Line {
	var out []Line
	for _, c := range Categories() {
		byID := s.lines[c]
		for _, id := range sortedIDs(byID) {
			out = append(out, byID[id])
		}
	}
	return out
}

// LineTotal sums unitPrice x quantity across every category.
func (s Selection) LineTotal() float64 {
	var total float64
	for _, byID := range s.lines {
		for _, line := range byID {
			total += line.item.unitPrice * float64(line.quantity)
		}
	}
	return money.Round2(total)
}

// ConvertCurrency returns a value-equal copy with every unit price
// replaced by round2(price x rate). The receiver is not mutated, and
// item identity, category and quantity carry over unchanged. Chained
// conversions do not compose exactly since every step rounds; convert
// once from the source currency.
func (s Selection) ConvertCurrency(rate float64) (Selection, error) {
	if rate <= 0 {
		return Selection{}, ErrInvalidRate
	}

	converted := NewSelection()
	for category, byID := range s.lines {
		dst := make(map[string]Line, len(byID))
		for id, line := range byID {
			dst[id] = Line{
				item:     line.item.withUnitPrice(money.Convert(line.item.unitPrice, rate)),
				quantity: line.quantity,
			}
		}
		converted.lines[category] = dst
	}
	return converted, nil
}

// Subtotal computes the pre-discount subtotal across selections, the
// primary order and the add-ons together.
func Subtotal(sets ...Selection) float64 {
	var total float64
	for _, s := range sets {
		total += s.LineTotal()
	}
	return money.Round2(total)
}

func sortedIDs(byID map[string]Line) []string {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
