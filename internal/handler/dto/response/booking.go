package response

import (
	"time"

	"resortly/internal/domain/booking"
	"resortly/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LineResponse struct {
	ItemID     string  `json:"itemId"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unitPrice"`
	Category   string  `json:"category"`
	MealSlot   *string `json:"mealSlot,omitempty"`
	ParentName *string `json:"parentName,omitempty"`
	Quantity   int     `json:"quantity"`
}

type BookingResponse struct {
	ID              uuid.UUID      `json:"id"`
	UserID          uuid.UUID      `json:"userId"`
	CheckIn         time.Time      `json:"checkIn"`
	CheckOut        time.Time      `json:"checkOut"`
	SelectedItems   []LineResponse `json:"selectedItems"`
	AddOns          []LineResponse `json:"addOns"`
	Currency        string         `json:"currency"`
	OriginalPrice   float64        `json:"originalPrice"`
	DiscountedPrice float64        `json:"discountedPrice"`
	Amount          float64        `json:"amount"`
	CouponCode      *string        `json:"couponCode,omitempty"`
	IsCheckedIn     bool           `json:"isCheckedIn"`
	IsCheckedOut    bool           `json:"isCheckedOut"`
	IsCancelled     bool           `json:"isCancelled"`
	CancelledAt     *time.Time     `json:"cancelledAt,omitempty"`
	IsRefunded      bool           `json:"isRefunded"`
	RefundID        *string        `json:"refundId,omitempty"`
	RefundedAt      *time.Time     `json:"refundedAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type BookingListResponse struct {
	ID          uuid.UUID `json:"id"`
	CheckIn     time.Time `json:"checkIn"`
	CheckOut    time.Time `json:"checkOut"`
	Currency    string    `json:"currency"`
	Amount      float64   `json:"amount"`
	IsCancelled bool      `json:"isCancelled"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateBookingResponse struct {
	ID uuid.UUID `json:"id"`
}

type QuoteResponse struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	TaxRate     float64 `json:"taxRate"`
	Insurance   float64 `json:"insurance"`
	FinalAmount float64 `json:"finalAmount"`
}

type CancelBookingResponse struct {
	Eligible      bool    `json:"eligible"`
	RefundPercent int     `json:"refundPercent"`
	RefundAmount  float64 `json:"refundAmount"`
}

func FromBookingView(view *queries.BookingView) (*BookingResponse, error) {
	var resp BookingResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromBookingListItem(item *queries.BookingListItem) (*BookingListResponse, error) {
	var resp BookingListResponse
	if err := copier.Copy(&resp, item); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromPriceBreakdown(b *booking.PriceBreakdown) QuoteResponse {
	return QuoteResponse{
		Subtotal:    b.Subtotal,
		Discount:    b.Discount,
		TaxRate:     b.TaxRate,
		Insurance:   b.Insurance,
		FinalAmount: b.FinalAmount,
	}
}

func FromRefundDecision(d *booking.RefundDecision) CancelBookingResponse {
	return CancelBookingResponse{
		Eligible:      d.Eligible,
		RefundPercent: d.RefundPercent,
		RefundAmount:  d.RefundAmount,
	}
}
