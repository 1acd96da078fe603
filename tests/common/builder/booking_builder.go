//go:build unit || e2e

package builder

import (
	"time"

	"resortly/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	UserID     uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Selection  []SelectionPair
	Currency   string
	Subtotal   float64
	Discount   float64
	TaxRate    float64
	Insurance  float64
	CouponCode *string
}

func NewBookingBuilder() *BookingBuilder {
	checkIn := time.Now().Add(72 * time.Hour)
	return &BookingBuilder{
		UserID:   uuid.New(),
		CheckIn:  checkIn,
		CheckOut: checkIn.Add(48 * time.Hour),
		Selection: []SelectionPair{
			{Item: NewItemBuilder(), Quantity: 2},
		},
		Currency: "INR",
		Subtotal: 200,
		TaxRate:  0.12,
	}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	stay, err := booking.NewStay(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}
	selection := MustBuildSelection(b.Selection...)
	breakdown := booking.NewPriceBreakdown(b.Subtotal, b.Discount, b.TaxRate, b.Insurance)
	return booking.NewBooking(b.UserID, stay, selection, b.Currency, breakdown, b.CouponCode), nil
}

func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithPricing(subtotal, discount, taxRate, insurance float64) *BookingBuilder {
	b.Subtotal = subtotal
	b.Discount = discount
	b.TaxRate = taxRate
	b.Insurance = insurance
	return b
}

func (b *BookingBuilder) WithCouponCode(code string) *BookingBuilder {
	b.CouponCode = &code
	return b
}

type PolicyBuilder struct {
	Tiers []booking.Tier
}

func NewPolicyBuilder() *PolicyBuilder {
	return &PolicyBuilder{
		Tiers: []booking.Tier{
			{HoursBeforeCheckIn: 48, RefundPercent: 100},
			{HoursBeforeCheckIn: 24, RefundPercent: 50},
			{HoursBeforeCheckIn: 0, RefundPercent: 0},
		},
	}
}

func (b *PolicyBuilder) WithTiers(tiers ...booking.Tier) *PolicyBuilder {
	b.Tiers = tiers
	return b
}

func (b *PolicyBuilder) BuildDomain() (booking.Policy, error) {
	return booking.NewPolicy(b.Tiers)
}
