package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read-side views returned to the handler layer.

type LineView struct {
	ItemID     string  `json:"itemId"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unitPrice"`
	Category   string  `json:"category"`
	MealSlot   *string `json:"mealSlot,omitempty"`
	ParentName *string `json:"parentName,omitempty"`
	Quantity   int     `json:"quantity"`
}

type BookingView struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"userId"`
	CheckIn         time.Time  `json:"checkIn"`
	CheckOut        time.Time  `json:"checkOut"`
	SelectedItems   []LineView `json:"selectedItems"`
	AddOns          []LineView `json:"addOns"`
	Currency        string     `json:"currency"`
	OriginalPrice   float64    `json:"originalPrice"`
	DiscountedPrice float64    `json:"discountedPrice"`
	Amount          float64    `json:"amount"`
	CouponCode      *string    `json:"couponCode,omitempty"`
	IsCheckedIn     bool       `json:"isCheckedIn"`
	IsCheckedOut    bool       `json:"isCheckedOut"`
	IsCancelled     bool       `json:"isCancelled"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	IsRefunded      bool       `json:"isRefunded"`
	RefundID        *string    `json:"refundId,omitempty"`
	RefundedAt      *time.Time `json:"refundedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type BookingListItem struct {
	ID          uuid.UUID `json:"id"`
	CheckIn     time.Time `json:"checkIn"`
	CheckOut    time.Time `json:"checkOut"`
	Currency    string    `json:"currency"`
	Amount      float64   `json:"amount"`
	IsCancelled bool      `json:"isCancelled"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UserView struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"isVerified"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}
