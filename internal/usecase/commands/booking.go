package commands

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"resortly/internal/domain/booking"
	"resortly/internal/domain/coupon"
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
	ErrNoActivePolicy  = errs.New("no active cancellation policy")
)

type BookingCommands interface {
	// Create runs the full valuation (conversion, coupon, tax,
	// insurance) against current catalog prices and persists the
	// booking. Coupon redemption and the insert share one transaction.
	Create(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (uuid.UUID, error)
	// AddItems charges add-ons at the tax rate on top of the stored
	// amount. Closed bookings reject additions.
	AddItems(ctx context.Context, bookingID uuid.UUID, req reqdto.AddItemsRequest, userID uuid.UUID, role user.Role) error
	CheckIn(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) error
	CheckOut(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) error
	// Cancel evaluates the active refund policy at one now snapshot and
	// transitions the booking. Exactly one of two concurrent cancel
	// calls wins the row.
	Cancel(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) (*booking.RefundDecision, error)
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	pricing config.PricingConfig
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) BookingCommands {
	return &bookingCommandsImpl{
		uow:     uow,
		clock:   clk,
		pricing: cfg.Pricing,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (uuid.UUID, error) {
	stay, err := booking.NewStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return uuid.Nil, err
	}

	selection, err := shared.BuildSelection(ctx, c.uow.Reads(), req.Items)
	if err != nil {
		if errors.Is(err, shared.ErrUnknownItem) {
			return uuid.Nil, ErrItemNotFound
		}
		return uuid.Nil, err
	}
	converted, err := selection.ConvertCurrency(c.pricing.CurrencyRate)
	if err != nil {
		return uuid.Nil, err
	}
	subtotal := converted.LineTotal()

	now := c.clock.Now()
	var discount float64
	var couponCode *string
	if code := req.GetCouponCode(); code != nil {
		snap, err := c.uow.Reads().CouponByCode(ctx, *code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return uuid.Nil, ErrCouponNotFound
			}
			return uuid.Nil, errs.Mark(err, ErrCommandFailed)
		}
		couponEntity, err := shared.CouponFromSnapshot(snap)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrCommandFailed)
		}
		discount, err = couponEntity.DiscountAmount(subtotal, now)
		if err != nil {
			return uuid.Nil, err
		}
		normalized := couponEntity.Code().String()
		couponCode = &normalized
	}

	insurance := 0.0
	if req.WithInsurance {
		insurance = c.pricing.InsuranceAmount
	}
	breakdown := booking.NewPriceBreakdown(subtotal, discount, c.pricing.TaxRate, insurance)

	b := booking.NewBooking(userID, stay, converted, c.pricing.Currency, breakdown, couponCode)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if couponCode != nil {
			// The conditional increment is the authoritative limit
			// check; the validation above only produced the amount.
			claimed, err := tx.Coupons().Redeem(ctx, *couponCode, userID)
			if err != nil {
				return err
			}
			if !claimed {
				return coupon.ErrCouponExhausted
			}
		}
		if _, err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}
		return enqueueBookingMail(ctx, tx, topicBookingMade, b, now)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return b.ID(), nil
}

func (c *bookingCommandsImpl) AddItems(ctx context.Context, bookingID uuid.UUID, req reqdto.AddItemsRequest, userID uuid.UUID, role user.Role) error {
	b, err := c.loadOwned(ctx, bookingID, userID, role)
	if err != nil {
		return err
	}

	addOns, err := shared.BuildSelection(ctx, c.uow.Reads(), req.Items)
	if err != nil {
		if errors.Is(err, shared.ErrUnknownItem) {
			return ErrItemNotFound
		}
		return err
	}
	converted, err := addOns.ConvertCurrency(c.pricing.CurrencyRate)
	if err != nil {
		return err
	}
	if err := b.AddItems(converted, c.pricing.TaxRate); err != nil {
		return err
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().UpdateItems(ctx, b)
	})
}

func (c *bookingCommandsImpl) CheckIn(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) error {
	b, err := c.loadOwned(ctx, bookingID, userID, role)
	if err != nil {
		return err
	}
	if err := b.CheckInGuest(); err != nil {
		return err
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		done, err := tx.Bookings().SetCheckedIn(ctx, bookingID)
		if err != nil {
			return err
		}
		if !done {
			return booking.ErrAlreadyCheckedIn
		}
		return nil
	})
}

func (c *bookingCommandsImpl) CheckOut(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) error {
	b, err := c.loadOwned(ctx, bookingID, userID, role)
	if err != nil {
		return err
	}
	if err := b.CheckOutGuest(); err != nil {
		return err
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		done, err := tx.Bookings().SetCheckedOut(ctx, bookingID)
		if err != nil {
			return err
		}
		if !done {
			return booking.ErrAlreadyCheckedOut
		}
		return nil
	})
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) (*booking.RefundDecision, error) {
	b, err := c.loadOwned(ctx, bookingID, userID, role)
	if err != nil {
		return nil, err
	}

	policySnap, err := c.uow.Reads().ActivePolicy(ctx)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNoActivePolicy
		}
		return nil, errs.Mark(err, ErrCommandFailed)
	}
	policy, err := shared.PolicyFromSnapshot(policySnap)
	if err != nil {
		return nil, errs.Mark(err, ErrCommandFailed)
	}

	now := c.clock.Now()
	decision, err := b.Cancel(policy, now)
	if err != nil {
		return nil, err
	}

	var refundID *string
	var refundedAt *time.Time
	if decision.Eligible {
		id := uuid.NewString()
		refundID = &id
		refundedAt = &now
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed, err := tx.Bookings().MarkCancelled(ctx, bookingID, now, refundID, refundedAt)
		if err != nil {
			return err
		}
		if !claimed {
			return booking.ErrAlreadyCancelled
		}
		return enqueueBookingMail(ctx, tx, topicBookingCancel, b, now)
	})
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

// loadOwned fetches the booking and enforces ownership. Admins operate
// on any booking; guests only on their own.
func (c *bookingCommandsImpl) loadOwned(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) (*booking.Booking, error) {
	snap, err := c.uow.Reads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrCommandFailed)
	}
	if role != user.RoleAdmin && snap.UserID != userID {
		return nil, ErrForbidden
	}
	b, err := shared.BookingFromSnapshot(snap)
	if err != nil {
		return nil, errs.Mark(err, ErrCommandFailed)
	}
	return b, nil
}

func enqueueBookingMail(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking, runAt time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": b.ID(),
		"user_id":    b.UserID(),
		"amount":     b.Amount(),
		"currency":   b.Currency(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, jobKindEmail, topic, payload, runAt)
}
