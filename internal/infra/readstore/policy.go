package readstore

import (
	"context"

	"resortly/internal/infra"
	"resortly/internal/infra/db"
	"resortly/internal/pkg/pgconv"
	"resortly/internal/usecase/shared"
)

type PolicyReadStore struct {
	db db.DBTX
}

func NewPolicyReadStore(dbtx db.DBTX) *PolicyReadStore {
	return &PolicyReadStore{db: dbtx}
}

// Active returns the single active cancellation policy with its tiers.
// Tier ordering is normalized again by the domain constructor, so the
// query order is only cosmetic.
func (r *PolicyReadStore) Active(ctx context.Context) (*shared.PolicySnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name
		FROM cancellation_policies
		WHERE is_active
		ORDER BY created_at DESC
		LIMIT 1`)

	var snap shared.PolicySnapshot
	if err := row.Scan(&snap.ID, &snap.Name); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("active policy not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find active policy", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT hours_before_check_in, refund_percent
		FROM cancellation_policy_tiers
		WHERE policy_id = $1
		ORDER BY hours_before_check_in DESC`, snap.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load policy tiers", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tier shared.PolicyTierSnapshot
		if err := rows.Scan(&tier.HoursBeforeCheckIn, &tier.RefundPercent); err != nil {
			return nil, infra.WrapRepoErr("failed to scan policy tier", err)
		}
		snap.Tiers = append(snap.Tiers, tier)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate policy tiers", err)
	}
	return &snap, nil
}
