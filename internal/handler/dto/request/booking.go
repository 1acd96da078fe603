package request

import (
	"strings"
	"time"
)

type ItemSelectionRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type CreateBookingRequest struct {
	CheckIn       time.Time              `json:"checkIn" binding:"required"`
	CheckOut      time.Time              `json:"checkOut" binding:"required"`
	Items         []ItemSelectionRequest `json:"items" binding:"required,min=1,dive"`
	CouponCode    *string                `json:"couponCode,omitempty"`
	WithInsurance bool                   `json:"withInsurance,omitempty"`
}

func (r CreateBookingRequest) GetCouponCode() *string {
	return normalizedCode(r.CouponCode)
}

type AddItemsRequest struct {
	Items []ItemSelectionRequest `json:"items" binding:"required,min=1,dive"`
}

type QuoteRequest struct {
	Items         []ItemSelectionRequest `json:"items" binding:"required,min=1,dive"`
	CouponCode    *string                `json:"couponCode,omitempty"`
	WithInsurance bool                   `json:"withInsurance,omitempty"`
}

func (r QuoteRequest) GetCouponCode() *string {
	return normalizedCode(r.CouponCode)
}

func normalizedCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
