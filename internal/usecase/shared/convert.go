package shared

import (
	"resortly/internal/domain/booking"
	"resortly/internal/domain/catalog"
	"resortly/internal/domain/coupon"
	"resortly/internal/domain/otp"
	"resortly/internal/domain/user"
)

// Snapshot-to-domain rehydration used by commands before rule
// evaluation. Validation runs through the domain constructors, so a
// corrupt row surfaces as a typed error instead of leaking through.

func SelectionFromLines(lines []LineSnapshot) (catalog.Selection, error) {
	sel := catalog.NewSelection()
	for _, l := range lines {
		category, err := catalog.NewCategory(l.Category)
		if err != nil {
			return catalog.Selection{}, err
		}
		item, err := catalog.NewItem(l.ItemID, l.Name, l.UnitPrice, category, l.MealSlot, l.ParentName)
		if err != nil {
			return catalog.Selection{}, err
		}
		if err := sel.Add(item, l.Quantity); err != nil {
			return catalog.Selection{}, err
		}
	}
	return sel, nil
}

func LinesFromSelection(sel catalog.Selection) []LineSnapshot {
	lines := sel.Lines()
	out := make([]LineSnapshot, 0, len(lines))
	for _, l := range lines {
		item := l.Item()
		out = append(out, LineSnapshot{
			ItemID:     item.ID(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice(),
			Category:   item.Category().String(),
			MealSlot:   item.MealSlot(),
			ParentName: item.ParentName(),
			Quantity:   l.Quantity(),
		})
	}
	return out
}

func CouponFromSnapshot(snap *CouponSnapshot) (*coupon.Coupon, error) {
	discount, err := coupon.NewDiscount(coupon.DiscountType(snap.DiscountType), snap.DiscountValue, snap.MaxDiscount)
	if err != nil {
		return nil, err
	}
	return coupon.NewCoupon(
		snap.ID,
		snap.Code,
		discount,
		snap.ExpiresAt,
		snap.UsageLimit,
		snap.UsageCount,
		snap.IsActive,
		snap.UserRedemptions,
	)
}

func BookingFromSnapshot(snap *BookingSnapshot) (*booking.Booking, error) {
	stay, err := booking.NewStay(snap.CheckIn, snap.CheckOut)
	if err != nil {
		return nil, err
	}
	selected, err := SelectionFromLines(snap.SelectedItems)
	if err != nil {
		return nil, err
	}
	addOns, err := SelectionFromLines(snap.AddOns)
	if err != nil {
		return nil, err
	}

	return booking.Reconstruct(
		snap.ID, snap.UserID,
		stay,
		selected, addOns,
		snap.Currency,
		snap.OriginalPrice, snap.DiscountedPrice, snap.Amount,
		snap.CouponCode,
		snap.IsCheckedIn, snap.IsCheckedOut, snap.IsCancelled,
		snap.CancelledAt,
		snap.IsRefunded,
		snap.RefundID,
		snap.RefundedAt,
		snap.CreatedAt, snap.UpdatedAt,
	), nil
}

func PolicyFromSnapshot(snap *PolicySnapshot) (booking.Policy, error) {
	tiers := make([]booking.Tier, 0, len(snap.Tiers))
	for _, t := range snap.Tiers {
		tiers = append(tiers, booking.Tier{
			HoursBeforeCheckIn: t.HoursBeforeCheckIn,
			RefundPercent:      t.RefundPercent,
		})
	}
	return booking.NewPolicy(tiers)
}

func UserFromSnapshot(snap *UserSnapshot) (*user.User, error) {
	email, err := user.NewEmail(snap.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(snap.Role)
	if err != nil {
		return nil, err
	}

	var challenge *otp.Challenge
	if snap.OtpCode != nil && snap.OtpExpiresAt != nil {
		ch := otp.Reconstruct(*snap.OtpCode, *snap.OtpExpiresAt)
		challenge = &ch
	}

	return user.Reconstruct(
		snap.ID,
		email,
		snap.PasswordHash,
		role,
		snap.IsVerified,
		challenge,
		snap.LastLogin,
		snap.IsActive,
		snap.CreatedAt,
		snap.UpdatedAt,
	), nil
}
