package repository

import (
	"context"

	"resortly/internal/infra"
	"resortly/internal/infra/db"

	"github.com/google/uuid"
)

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) *CouponRepository {
	return &CouponRepository{db: dbtx}
}

// Redeem is the authoritative usage-limit check: the increment only
// lands while usage_count is below usage_limit, so the counter can
// never pass the limit no matter how many transactions race. A false
// return means the limit was already reached.
func (r *CouponRepository) Redeem(ctx context.Context, code string, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE coupons
		SET usage_count = usage_count + 1, updated_at = now()
		WHERE code = $1
		  AND is_active
		  AND (usage_limit IS NULL OR usage_count < usage_limit)`,
		code,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to redeem coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO coupon_redemptions (coupon_id, user_id, count)
		SELECT id, $2, 1 FROM coupons WHERE code = $1
		ON CONFLICT (coupon_id, user_id)
		DO UPDATE SET count = coupon_redemptions.count + 1`,
		code, userID,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to record coupon redemption", err)
	}
	return true, nil
}
