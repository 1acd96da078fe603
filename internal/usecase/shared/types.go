package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side view types.

type ItemSnapshot struct {
	ID         string
	Name       string
	UnitPrice  float64
	Category   string
	MealSlot   *string
	ParentName *string
}

type CouponSnapshot struct {
	ID              uuid.UUID
	Code            string
	DiscountType    string
	DiscountValue   float64
	MaxDiscount     *float64
	ExpiresAt       time.Time
	UsageLimit      *int
	UsageCount      int
	IsActive        bool
	UserRedemptions map[uuid.UUID]int
}

type LineSnapshot struct {
	ItemID     string
	Name       string
	UnitPrice  float64
	Category   string
	MealSlot   *string
	ParentName *string
	Quantity   int
}

type BookingSnapshot struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CheckIn         time.Time
	CheckOut        time.Time
	SelectedItems   []LineSnapshot
	AddOns          []LineSnapshot
	Currency        string
	OriginalPrice   float64
	DiscountedPrice float64
	Amount          float64
	CouponCode      *string
	IsCheckedIn     bool
	IsCheckedOut    bool
	IsCancelled     bool
	CancelledAt     *time.Time
	IsRefunded      bool
	RefundID        *string
	RefundedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsVerified   bool
	OtpCode      *int
	OtpExpiresAt *time.Time
	LastLogin    *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type PolicyTierSnapshot struct {
	HoursBeforeCheckIn float64
	RefundPercent      int
}

type PolicySnapshot struct {
	ID    uuid.UUID
	Name  string
	Tiers []PolicyTierSnapshot
}
