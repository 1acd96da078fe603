package shared

import (
	"context"
	"time"

	"resortly/internal/domain/booking"
	"resortly/internal/domain/user"

	"github.com/google/uuid"
)

// UnitOfWork scopes write operations to one transaction. Commands do all
// their reads up front through CommandReads, build domain state, then
// apply every write inside a single Within block so partial outcomes
// never persist.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Reads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Coupons() CouponRepository
	Users() UserRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

// CommandReads are the snapshot loads the write side needs for
// validation. Snapshots keep commands decoupled from read-side views.
type CommandReads interface {
	ItemsByIDs(ctx context.Context, ids []string) ([]ItemSnapshot, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	ActivePolicy(ctx context.Context) (*PolicySnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	// UpdateItems persists the add-on selection and re-computed amount.
	UpdateItems(ctx context.Context, b *booking.Booking) error
	// MarkCancelled is a compare-and-set on the cancellation flags: it
	// only succeeds while the row is still un-cancelled and un-refunded,
	// so two concurrent cancellations cannot both win. Returns false
	// when the row was already claimed.
	MarkCancelled(ctx context.Context, id uuid.UUID, cancelledAt time.Time, refundID *string, refundedAt *time.Time) (bool, error)
	SetCheckedIn(ctx context.Context, id uuid.UUID) (bool, error)
	SetCheckedOut(ctx context.Context, id uuid.UUID) (bool, error)
}

type CouponRepository interface {
	// Redeem performs the atomic conditional increment: usage_count
	// bumps only while below usage_limit, and the per-user redemption
	// counter rides in the same statement set. Returns false when the
	// limit was already reached, in which case the caller must not
	// apply the discount.
	Redeem(ctx context.Context, code string, userID uuid.UUID) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
	// SaveChallenge overwrites the identity's challenge fields,
	// superseding any prior unconsumed code.
	SaveChallenge(ctx context.Context, id uuid.UUID, code int, expiresAt time.Time) error
	// ConsumeChallenge clears the challenge fields and sets the
	// verified flag in one statement.
	ConsumeChallenge(ctx context.Context, id uuid.UUID) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
