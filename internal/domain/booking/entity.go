package booking

import (
	"errors"
	"time"

	"resortly/internal/domain/catalog"
	"resortly/internal/pkg/money"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrAlreadyCheckedIn  = errors.New("booking is already checked in")
	ErrAlreadyCheckedOut = errors.New("booking is already checked out")
	ErrNotCheckedIn      = errors.New("booking has not been checked in")
	ErrBookingClosed     = errors.New("booking is cancelled or checked out")
)

// Booking is the purchased stay with its item selections, valuation
// result and lifecycle flags. Created once at purchase time, mutated by
// check-in, check-out, add-on and cancellation events, never deleted.
type Booking struct {
	id              uuid.UUID
	userID          uuid.UUID
	stay            Stay
	selectedItems   catalog.Selection
	addOns          catalog.Selection
	currency        string
	originalPrice   float64
	discountedPrice float64
	amount          float64
	couponCode      *string
	isCheckedIn     bool
	isCheckedOut    bool
	isCancelled     bool
	cancelledAt     *time.Time
	isRefunded      bool
	refundID        *string
	refundedAt      *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewBooking creates a booking at purchase time from the valuation
// result. originalPrice is the pre-discount subtotal, discountedPrice
// the subtotal after the coupon, amount the final charged value.
func NewBooking(
	userID uuid.UUID,
	stay Stay,
	selectedItems catalog.Selection,
	currency string,
	breakdown PriceBreakdown,
	couponCode *string,
) *Booking {
	return &Booking{
		id:              uuid.New(),
		userID:          userID,
		stay:            stay,
		selectedItems:   selectedItems,
		addOns:          catalog.NewSelection(),
		currency:        currency,
		originalPrice:   breakdown.Subtotal,
		discountedPrice: money.Round2(breakdown.Subtotal - breakdown.Discount),
		amount:          breakdown.FinalAmount,
		couponCode:      couponCode,
	}
}

// Reconstruct rebuilds a booking from persistence.
func Reconstruct(
	id, userID uuid.UUID,
	stay Stay,
	selectedItems, addOns catalog.Selection,
	currency string,
	originalPrice, discountedPrice, amount float64,
	couponCode *string,
	isCheckedIn, isCheckedOut, isCancelled bool,
	cancelledAt *time.Time,
	isRefunded bool,
	refundID *string,
	refundedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		userID:          userID,
		stay:            stay,
		selectedItems:   selectedItems,
		addOns:          addOns,
		currency:        currency,
		originalPrice:   originalPrice,
		discountedPrice: discountedPrice,
		amount:          amount,
		couponCode:      couponCode,
		isCheckedIn:     isCheckedIn,
		isCheckedOut:    isCheckedOut,
		isCancelled:     isCancelled,
		cancelledAt:     cancelledAt,
		isRefunded:      isRefunded,
		refundID:        refundID,
		refundedAt:      refundedAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// AddItems appends post-booking add-ons and charges them at taxRate on
// top of the current amount. Closed bookings reject additions.
func (b *Booking) AddItems(addOns catalog.Selection, taxRate float64) error {
	if b.isCancelled || b.isCheckedOut {
		return ErrBookingClosed
	}

	for _, line := range addOns.Lines() {
		if err := b.addOns.Add(line.Item(), line.Quantity()); err != nil {
			return err
		}
	}
	b.amount = money.Round2(b.amount + addOns.LineTotal()*(1+taxRate))
	return nil
}

// Cancel evaluates policy at one now snapshot and transitions the
// booking to cancelled. A booking that is already cancelled or refunded
// rejects the second attempt; refunds are issued at most once.
func (b *Booking) Cancel(policy Policy, now time.Time) (RefundDecision, error) {
	if b.isCancelled || b.isRefunded {
		return RefundDecision{}, ErrAlreadyCancelled
	}

	decision := policy.Decide(b.amount, b.stay.CheckIn(), now)
	cancelledAt := now
	b.isCancelled = true
	b.cancelledAt = &cancelledAt
	return decision, nil
}

// MarkRefunded records the refund issued for a cancelled booking.
func (b *Booking) MarkRefunded(refundID string, at time.Time) error {
	if !b.isCancelled {
		return ErrAlreadyCancelled
	}
	if b.isRefunded {
		return ErrAlreadyCancelled
	}
	b.isRefunded = true
	b.refundID = &refundID
	b.refundedAt = &at
	return nil
}

func (b *Booking) CheckInGuest() error {
	if b.isCancelled {
		return ErrAlreadyCancelled
	}
	if b.isCheckedIn {
		return ErrAlreadyCheckedIn
	}
	b.isCheckedIn = true
	return nil
}

func (b *Booking) CheckOutGuest() error {
	if !b.isCheckedIn {
		return ErrNotCheckedIn
	}
	if b.isCheckedOut {
		return ErrAlreadyCheckedOut
	}
	b.isCheckedOut = true
	return nil
}

func (b *Booking) ID() uuid.UUID                    { return b.id }
func (b *Booking) UserID() uuid.UUID                { return b.userID }
func (b *Booking) Stay() Stay                       { return b.stay }
func (b *Booking) SelectedItems() catalog.Selection { return b.selectedItems }
func (b *Booking) AddOns() catalog.Selection        { return b.addOns }
func (b *Booking) Currency() string                 { return b.currency }
func (b *Booking) OriginalPrice() float64           { return b.originalPrice }
func (b *Booking) DiscountedPrice() float64         { return b.discountedPrice }
func (b *Booking) Amount() float64                  { return b.amount }
func (b *Booking) CouponCode() *string              { return b.couponCode }
func (b *Booking) IsCheckedIn() bool                { return b.isCheckedIn }
func (b *Booking) IsCheckedOut() bool               { return b.isCheckedOut }
func (b *Booking) IsCancelled() bool                { return b.isCancelled }
func (b *Booking) CancelledAt() *time.Time          { return b.cancelledAt }
func (b *Booking) IsRefunded() bool                 { return b.isRefunded }
func (b *Booking) RefundID() *string                { return b.refundID }
func (b *Booking) RefundedAt() *time.Time           { return b.refundedAt }
func (b *Booking) CreatedAt() time.Time             { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time             { return b.updatedAt }
