package readstore

import (
	"context"

	"resortly/internal/infra"
	"resortly/internal/infra/converter"
	"resortly/internal/infra/db"
	"resortly/internal/pkg/pgconv"
	"resortly/internal/usecase/queries"
	"resortly/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingColumns = `
	id, user_id, check_in, check_out,
	selected_items, add_ons,
	currency, original_price, discounted_price, amount, coupon_code,
	is_checked_in, is_checked_out,
	is_cancelled, cancelled_at,
	is_refunded, refund_id, refunded_at,
	created_at, updated_at`

func (r *BookingReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, `SELECT`+bookingColumns+` FROM bookings WHERE id = $1`, id)

	var view queries.BookingView
	var selectedRaw, addOnsRaw []byte
	err := row.Scan(
		&view.ID, &view.UserID, &view.CheckIn, &view.CheckOut,
		&selectedRaw, &addOnsRaw,
		&view.Currency, &view.OriginalPrice, &view.DiscountedPrice, &view.Amount, &view.CouponCode,
		&view.IsCheckedIn, &view.IsCheckedOut,
		&view.IsCancelled, &view.CancelledAt,
		&view.IsRefunded, &view.RefundID, &view.RefundedAt,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	if view.SelectedItems, err = converter.LineViewsFromJSON(selectedRaw); err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking lines", err)
	}
	if view.AddOns, err = converter.LineViewsFromJSON(addOnsRaw); err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking add-ons", err)
	}
	return &view, nil
}

func (r *BookingReadStore) ListViewsByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, check_in, check_out, currency, amount, is_cancelled, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(&item.ID, &item.CheckIn, &item.CheckOut, &item.Currency, &item.Amount, &item.IsCancelled, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return items, nil
}

// SnapshotByID loads the write-side snapshot used by commands.
func (r *BookingReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row := r.db.QueryRow(ctx, `SELECT`+bookingColumns+` FROM bookings WHERE id = $1`, id)

	var snap shared.BookingSnapshot
	var selectedRaw, addOnsRaw []byte
	err := row.Scan(
		&snap.ID, &snap.UserID, &snap.CheckIn, &snap.CheckOut,
		&selectedRaw, &addOnsRaw,
		&snap.Currency, &snap.OriginalPrice, &snap.DiscountedPrice, &snap.Amount, &snap.CouponCode,
		&snap.IsCheckedIn, &snap.IsCheckedOut,
		&snap.IsCancelled, &snap.CancelledAt,
		&snap.IsRefunded, &snap.RefundID, &snap.RefundedAt,
		&snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	if snap.SelectedItems, err = converter.LinesFromJSON(selectedRaw); err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking lines", err)
	}
	if snap.AddOns, err = converter.LinesFromJSON(addOnsRaw); err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking add-ons", err)
	}
	return &snap, nil
}
