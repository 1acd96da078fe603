package readstore

import (
	"context"
	"strings"

	"resortly/internal/infra"
	"resortly/internal/infra/db"
	"resortly/internal/pkg/pgconv"
	"resortly/internal/usecase/shared"

	"github.com/google/uuid"
)

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

func (r *CouponReadStore) FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	row := r.db.QueryRow(ctx, `
		SELECT id, code, discount_type, discount_value, max_discount,
		       expires_at, usage_limit, usage_count, is_active
		FROM coupons
		WHERE code = $1`, normalized)

	var snap shared.CouponSnapshot
	err := row.Scan(
		&snap.ID, &snap.Code, &snap.DiscountType, &snap.DiscountValue, &snap.MaxDiscount,
		&snap.ExpiresAt, &snap.UsageLimit, &snap.UsageCount, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}

	redemptions, err := r.redemptionsByCoupon(ctx, snap.ID)
	if err != nil {
		return nil, err
	}
	snap.UserRedemptions = redemptions
	return &snap, nil
}

func (r *CouponReadStore) redemptionsByCoupon(ctx context.Context, couponID uuid.UUID) (map[uuid.UUID]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, count
		FROM coupon_redemptions
		WHERE coupon_id = $1`, couponID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load coupon redemptions", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]int)
	for rows.Next() {
		var userID uuid.UUID
		var count int
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon redemption", err)
		}
		out[userID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate coupon redemptions", err)
	}
	return out, nil
}
