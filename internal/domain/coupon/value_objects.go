package coupon

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountType    = errors.New("invalid discount type")
	ErrInvalidDiscountValue   = errors.New("discount value must be positive")
	ErrInvalidDiscountPercent = errors.New("percentage discount cannot exceed 100")
	ErrInvalidMaxDiscount     = errors.New("max discount applies to percentage discounts only")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// Code is a case-normalized coupon code.
type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// Discount is the coupon's reduction rule: either a fixed amount or a
// percentage with an optional absolute cap.
type Discount struct {
	discountType DiscountType
	value        float64
	maxDiscount  *float64
}

func NewDiscount(discountType DiscountType, value float64, maxDiscount *float64) (Discount, error) {
	if !discountType.IsValid() {
		return Discount{}, ErrInvalidDiscountType
	}
	if value <= 0 {
		return Discount{}, ErrInvalidDiscountValue
	}
	if discountType == DiscountPercentage && value > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	if maxDiscount != nil {
		if discountType != DiscountPercentage {
			return Discount{}, ErrInvalidMaxDiscount
		}
		if *maxDiscount <= 0 {
			return Discount{}, ErrInvalidDiscountValue
		}
	}

	return Discount{
		discountType: discountType,
		value:        value,
		maxDiscount:  maxDiscount,
	}, nil
}

func (d Discount) Type() DiscountType    { return d.discountType }
func (d Discount) Value() float64        { return d.value }
func (d Discount) MaxDiscount() *float64 { return d.maxDiscount }

func (d Discount) IsPercentage() bool {
	return d.discountType == DiscountPercentage
}
