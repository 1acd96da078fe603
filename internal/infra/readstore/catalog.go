package readstore

import (
	"context"

	"resortly/internal/infra"
	"resortly/internal/infra/db"
	"resortly/internal/usecase/shared"
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

// ItemsByIDs returns the active items among ids. Absent ids are simply
// missing from the result; the caller decides whether that is an error.
func (r *CatalogReadStore) ItemsByIDs(ctx context.Context, ids []string) ([]shared.ItemSnapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, unit_price, category, meal_slot, parent_name
		FROM catalog_items
		WHERE id = ANY($1) AND is_active`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load catalog items", err)
	}
	defer rows.Close()

	items := make([]shared.ItemSnapshot, 0, len(ids))
	for rows.Next() {
		var item shared.ItemSnapshot
		if err := rows.Scan(&item.ID, &item.Name, &item.UnitPrice, &item.Category, &item.MealSlot, &item.ParentName); err != nil {
			return nil, infra.WrapRepoErr("failed to scan catalog item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate catalog items", err)
	}
	return items, nil
}
