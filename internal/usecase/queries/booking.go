package queries

import (
	"context"
	"errors"

	"resortly/internal/domain/booking"
	"resortly/internal/domain/user"
	reqdto "resortly/internal/handler/dto/request"
	"resortly/internal/infra"
	"resortly/internal/pkg/clock"
	"resortly/internal/pkg/config"
	"resortly/internal/pkg/errs"
	"resortly/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrForbidden       = errs.New("booking belongs to another user")
	ErrItemNotFound    = errs.New("catalog item not found")
	ErrCouponNotFound  = errs.New("coupon not found")
	ErrQueryFailed     = errs.New("query failed")
)

type BookingReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListViewsByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
}

type CatalogReadStore interface {
	ItemsByIDs(ctx context.Context, ids []string) ([]shared.ItemSnapshot, error)
}

type CouponReadStore interface {
	FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id, requesterID uuid.UUID, role user.Role) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	// Quote runs the valuation without persisting anything: line totals,
	// currency conversion, coupon validation and the tax/insurance
	// formula, against current catalog prices.
	Quote(ctx context.Context, req reqdto.QuoteRequest, userID uuid.UUID) (*booking.PriceBreakdown, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	catalog  CatalogReadStore
	coupons  CouponReadStore
	clock    clock.Clock
	pricing  config.PricingConfig
}

func NewBookingQueries(
	bookings BookingReadStore,
	catalog CatalogReadStore,
	coupons CouponReadStore,
	clk clock.Clock,
	cfg config.Config,
) BookingQueries {
	return &bookingQueriesImpl{
		bookings: bookings,
		catalog:  catalog,
		coupons:  coupons,
		clock:    clk,
		pricing:  cfg.Pricing,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id, requesterID uuid.UUID, role user.Role) (*BookingView, error) {
	view, err := q.bookings.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	// Admins see every booking; guests only their own.
	if role != user.RoleAdmin && view.UserID != requesterID {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	items, err := q.bookings.ListViewsByUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return items, nil
}

func (q *bookingQueriesImpl) Quote(ctx context.Context, req reqdto.QuoteRequest, userID uuid.UUID) (*booking.PriceBreakdown, error) {
	selection, err := shared.BuildSelection(ctx, q.catalog, req.Items)
	if err != nil {
		if errors.Is(err, shared.ErrUnknownItem) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	converted, err := selection.ConvertCurrency(q.pricing.CurrencyRate)
	if err != nil {
		return nil, err
	}
	subtotal := converted.LineTotal()

	var discount float64
	if code := req.GetCouponCode(); code != nil {
		snap, err := q.coupons.FindByCode(ctx, *code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrCouponNotFound
			}
			return nil, errs.Mark(err, ErrQueryFailed)
		}
		couponEntity, err := shared.CouponFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		discount, err = couponEntity.DiscountAmount(subtotal, q.clock.Now())
		if err != nil {
			return nil, err
		}
	}

	insurance := 0.0
	if req.WithInsurance {
		insurance = q.pricing.InsuranceAmount
	}
	breakdown := booking.NewPriceBreakdown(subtotal, discount, q.pricing.TaxRate, insurance)
	return &breakdown, nil
}
