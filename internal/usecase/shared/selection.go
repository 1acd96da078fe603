package shared

import (
	"context"

	"resortly/internal/domain/catalog"
	reqdto "resortly/internal/handler/dto/request"
	"resortly/internal/pkg/errs"
)

var ErrUnknownItem = errs.New("unknown catalog item")

// ItemReads is the minimal catalog lookup both sides share.
type ItemReads interface {
	ItemsByIDs(ctx context.Context, ids []string) ([]ItemSnapshot, error)
}

// BuildSelection resolves the requested item ids against the catalog
// and assembles a validated selection. Quantities below 1 fail inside
// Selection.Add; ids the catalog does not know fail with
// ErrUnknownItem.
func BuildSelection(ctx context.Context, reads ItemReads, items []reqdto.ItemSelectionRequest) (catalog.Selection, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if !seen[it.ItemID] {
			seen[it.ItemID] = true
			ids = append(ids, it.ItemID)
		}
	}

	snapshots, err := reads.ItemsByIDs(ctx, ids)
	if err != nil {
		return catalog.Selection{}, err
	}
	byID := make(map[string]ItemSnapshot, len(snapshots))
	for _, s := range snapshots {
		byID[s.ID] = s
	}

	selection := catalog.NewSelection()
	for _, it := range items {
		snap, ok := byID[it.ItemID]
		if !ok {
			return catalog.Selection{}, errs.Wrap(ErrUnknownItem, it.ItemID)
		}
		category, err := catalog.NewCategory(snap.Category)
		if err != nil {
			return catalog.Selection{}, err
		}
		item, err := catalog.NewItem(snap.ID, snap.Name, snap.UnitPrice, category, snap.MealSlot, snap.ParentName)
		if err != nil {
			return catalog.Selection{}, err
		}
		if err := selection.Add(item, it.Quantity); err != nil {
			return catalog.Selection{}, err
		}
	}
	return selection, nil
}
