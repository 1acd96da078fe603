//go:build unit || e2e

package builder

import (
	"time"

	"resortly/internal/domain/coupon"
	"resortly/internal/usecase/shared"

	"github.com/google/uuid"
)

type CouponBuilder struct {
	ID            uuid.UUID
	Code          string
	DiscountType  string
	DiscountValue float64
	MaxDiscount   *float64
	ExpiresAt     time.Time
	UsageLimit    *int
	UsageCount    int
	IsActive      bool
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		ID:            uuid.New(),
		Code:          "SUMMER20",
		DiscountType:  "percentage",
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		IsActive:      true,
	}
}

func (b *CouponBuilder) BuildDomain() (*coupon.Coupon, error) {
	discount, err := coupon.NewDiscount(coupon.DiscountType(b.DiscountType), b.DiscountValue, b.MaxDiscount)
	if err != nil {
		return nil, err
	}
	return coupon.NewCoupon(b.ID, b.Code, discount, b.ExpiresAt, b.UsageLimit, b.UsageCount, b.IsActive, nil)
}

func (b *CouponBuilder) BuildSnapshot() *shared.CouponSnapshot {
	return &shared.CouponSnapshot{
		ID:            b.ID,
		Code:          b.Code,
		DiscountType:  b.DiscountType,
		DiscountValue: b.DiscountValue,
		MaxDiscount:   b.MaxDiscount,
		ExpiresAt:     b.ExpiresAt,
		UsageLimit:    b.UsageLimit,
		UsageCount:    b.UsageCount,
		IsActive:      b.IsActive,
	}
}

func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) WithFixedDiscount(value float64) *CouponBuilder {
	b.DiscountType = "fixed"
	b.DiscountValue = value
	b.MaxDiscount = nil
	return b
}

func (b *CouponBuilder) WithPercentageDiscount(value float64, maxDiscount *float64) *CouponBuilder {
	b.DiscountType = "percentage"
	b.DiscountValue = value
	b.MaxDiscount = maxDiscount
	return b
}

func (b *CouponBuilder) WithExpiresAt(t time.Time) *CouponBuilder {
	b.ExpiresAt = t
	return b
}

func (b *CouponBuilder) WithUsage(limit, count int) *CouponBuilder {
	b.UsageLimit = &limit
	b.UsageCount = count
	return b
}

func (b *CouponBuilder) Inactive() *CouponBuilder {
	b.IsActive = false
	return b
}
