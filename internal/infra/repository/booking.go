package repository

import (
	"context"
	"time"

	"resortly/internal/domain/booking"
	"resortly/internal/infra"
	"resortly/internal/infra/converter"
	"resortly/internal/infra/db"
	"resortly/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	selectedRaw, err := converter.LinesToJSON(shared.LinesFromSelection(b.SelectedItems()))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode booking lines", err)
	}
	addOnsRaw, err := converter.LinesToJSON(shared.LinesFromSelection(b.AddOns()))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode booking add-ons", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO bookings (
			id, user_id, check_in, check_out,
			selected_items, add_ons,
			currency, original_price, discounted_price, amount, coupon_code
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID(), b.UserID(), b.Stay().CheckIn(), b.Stay().CheckOut(),
		selectedRaw, addOnsRaw,
		b.Currency(), b.OriginalPrice(), b.DiscountedPrice(), b.Amount(), b.CouponCode(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return b.ID(), nil
}

func (r *BookingRepository) UpdateItems(ctx context.Context, b *booking.Booking) error {
	addOnsRaw, err := converter.LinesToJSON(shared.LinesFromSelection(b.AddOns()))
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking add-ons", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET add_ons = $2, amount = $3, updated_at = now()
		WHERE id = $1 AND NOT is_cancelled AND NOT is_checked_out`,
		b.ID(), addOnsRaw, b.Amount(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking items", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not updatable", nil, infra.KindNotFound)
	}
	return nil
}

// MarkCancelled flips the cancellation flags only while the row is
// still un-cancelled and un-refunded, so concurrent cancellations
// resolve to exactly one winner.
func (r *BookingRepository) MarkCancelled(ctx context.Context, id uuid.UUID, cancelledAt time.Time, refundID *string, refundedAt *time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET is_cancelled = TRUE,
		    cancelled_at = $2,
		    is_refunded = ($3::text IS NOT NULL),
		    refund_id = $3,
		    refunded_at = $4,
		    updated_at = now()
		WHERE id = $1 AND NOT is_cancelled AND NOT is_refunded`,
		id, cancelledAt, refundID, refundedAt,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel booking", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) SetCheckedIn(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET is_checked_in = TRUE, updated_at = now()
		WHERE id = $1 AND NOT is_checked_in AND NOT is_cancelled`,
		id,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check in booking", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) SetCheckedOut(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET is_checked_out = TRUE, updated_at = now()
		WHERE id = $1 AND is_checked_in AND NOT is_checked_out`,
		id,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check out booking", err)
	}
	return tag.RowsAffected() == 1, nil
}
