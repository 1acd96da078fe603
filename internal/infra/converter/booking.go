// Package converter maps between persistence representations and the
// usecase-facing snapshot and view types.
package converter

import (
	"encoding/json"

	"resortly/internal/usecase/queries"
	"resortly/internal/usecase/shared"
)

// LineJSON is the JSONB shape of one selection line inside the
// bookings row. Item attributes are denormalized at purchase time so a
// later catalog price change never rewrites history.
type LineJSON struct {
	ItemID     string  `json:"item_id"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	Category   string  `json:"category"`
	MealSlot   *string `json:"meal_slot,omitempty"`
	ParentName *string `json:"parent_name,omitempty"`
	Quantity   int     `json:"quantity"`
}

func LinesToJSON(lines []shared.LineSnapshot) ([]byte, error) {
	out := make([]LineJSON, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineJSON{
			ItemID:     l.ItemID,
			Name:       l.Name,
			UnitPrice:  l.UnitPrice,
			Category:   l.Category,
			MealSlot:   l.MealSlot,
			ParentName: l.ParentName,
			Quantity:   l.Quantity,
		})
	}
	return json.Marshal(out)
}

func LinesFromJSON(raw []byte) ([]shared.LineSnapshot, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []LineJSON
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	out := make([]shared.LineSnapshot, 0, len(rows))
	for _, r := range rows {
		out = append(out, shared.LineSnapshot{
			ItemID:     r.ItemID,
			Name:       r.Name,
			UnitPrice:  r.UnitPrice,
			Category:   r.Category,
			MealSlot:   r.MealSlot,
			ParentName: r.ParentName,
			Quantity:   r.Quantity,
		})
	}
	return out, nil
}

func LineViewsFromJSON(raw []byte) ([]queries.LineView, error) {
	lines, err := LinesFromJSON(raw)
	if err != nil {
		return nil, err
	}
	out := make([]queries.LineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, queries.LineView{
			ItemID:     l.ItemID,
			Name:       l.Name,
			UnitPrice:  l.UnitPrice,
			Category:   l.Category,
			MealSlot:   l.MealSlot,
			ParentName: l.ParentName,
			Quantity:   l.Quantity,
		})
	}
	return out, nil
}
