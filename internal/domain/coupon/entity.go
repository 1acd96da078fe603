package coupon

import (
	"errors"
	"time"

	"resortly/internal/pkg/money"

	"github.com/google/uuid"
)

var (
	ErrCouponInactive      = errors.New("coupon is not active")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrCouponExhausted     = errors.New("coupon usage limit reached")
	ErrCouponInvalidAmount = errors.New("coupon discount exceeds subtotal")
)

// Coupon is shared read/write state across every booking that references
// its code. The usage counter is monotonic: it increments exactly once
// per successful redemption and never decrements. The in-memory entity
// only mirrors the counters; the conditional increment that enforces the
// limit under concurrency lives at the persistence boundary.
type Coupon struct {
	id              uuid.UUID
	code            Code
	discount        Discount
	expiresAt       time.Time
	usageLimit      *int
	usageCount      int
	isActive        bool
	userRedemptions map[uuid.UUID]int
	createdAt       time.Time
	updatedAt       time.Time
}

func NewCoupon(
	id uuid.UUID,
	code string,
	discount Discount,
	expiresAt time.Time,
	usageLimit *int,
	usageCount int,
	isActive bool,
	userRedemptions map[uuid.UUID]int,
) (*Coupon, error) {
	couponCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}
	if userRedemptions == nil {
		userRedemptions = make(map[uuid.UUID]int)
	}

	return &Coupon{
		id:              id,
		code:            couponCode,
		discount:        discount,
		expiresAt:       expiresAt,
		usageLimit:      usageLimit,
		usageCount:      usageCount,
		isActive:        isActive,
		userRedemptions: userRedemptions,
	}, nil
}

// ValidateUsage runs the redemption checks in contract order: active,
// then unexpired, then not exhausted. The first failure wins.
func (c *Coupon) ValidateUsage(now time.Time) error {
	if !c.isActive {
		return ErrCouponInactive
	}
	if !now.Before(c.expiresAt) {
		return ErrCouponExpired
	}
	if c.usageLimit != nil && c.usageCount >= *c.usageLimit {
		return ErrCouponExhausted
	}
	return nil
}

// DiscountAmount validates the coupon at now and computes the discount
// against subtotal. Fixed discounts are capped at the subtotal;
// percentage discounts are capped at MaxDiscount when present. The
// result is never negative and never exceeds the subtotal.
func (c *Coupon) DiscountAmount(subtotal float64, now time.Time) (float64, error) {
	if err := c.ValidateUsage(now); err != nil {
		return 0, err
	}
	if subtotal < 0 {
		return 0, ErrCouponInvalidAmount
	}

	var raw float64
	switch c.discount.discountType {
	case DiscountFixed:
		raw = c.discount.value
	case DiscountPercentage:
		raw = subtotal * c.discount.value / 100
		if c.discount.maxDiscount != nil && raw > *c.discount.maxDiscount {
			raw = *c.discount.maxDiscount
		}
	}

	if raw < 0 {
		// Guarded, not fatal: a malformed discount never drives the
		// final price up.
		return 0, ErrCouponInvalidAmount
	}
	if raw > subtotal {
		raw = subtotal
	}
	return money.Round2(raw), nil
}

// Redeemed records one successful redemption by userID on the in-memory
// view. Persistence performs the authoritative conditional increment.
func (c *Coupon) Redeemed(userID uuid.UUID) {
	c.usageCount++
	c.userRedemptions[userID]++
}

func (c *Coupon) RedemptionsBy(userID uuid.UUID) int {
	return c.userRedemptions[userID]
}

func (c *Coupon) ID() uuid.UUID        { return c.id }
func (c *Coupon) Code() Code           { return c.code }
func (c *Coupon) Discount() Discount   { return c.discount }
func (c *Coupon) ExpiresAt() time.Time { return c.expiresAt }
func (c *Coupon) UsageLimit() *int     { return c.usageLimit }
func (c *Coupon) UsageCount() int      { return c.usageCount }
func (c *Coupon) IsActive() bool       { return c.isActive }
func (c *Coupon) CreatedAt() time.Time { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time { return c.updatedAt }
