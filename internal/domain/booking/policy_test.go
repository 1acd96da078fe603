//go:build unit

package booking_test

import (
	"testing"
	"time"

	"resortly/internal/domain/booking"
	"resortly/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy(t *testing.T) {
	t.Run("rejects empty tier set", func(t *testing.T) {
		_, err := booking.NewPolicy(nil)
		assert.ErrorIs(t, err, booking.ErrEmptyPolicy)
	})

	t.Run("rejects out-of-range refund percent", func(t *testing.T) {
		_, err := booking.NewPolicy([]booking.Tier{{HoursBeforeCheckIn: 24, RefundPercent: 101}})
		assert.ErrorIs(t, err, booking.ErrInvalidRefundPercent)

		_, err = booking.NewPolicy([]booking.Tier{{HoursBeforeCheckIn: 24, RefundPercent: -1}})
		assert.ErrorIs(t, err, booking.ErrInvalidRefundPercent)
	})

	t.Run("rejects negative threshold", func(t *testing.T) {
		_, err := booking.NewPolicy([]booking.Tier{{HoursBeforeCheckIn: -1, RefundPercent: 50}})
		assert.ErrorIs(t, err, booking.ErrInvalidTierThreshold)
	})

	t.Run("normalizes to descending threshold order", func(t *testing.T) {
		p, err := booking.NewPolicy([]booking.Tier{
			{HoursBeforeCheckIn: 0, RefundPercent: 0},
			{HoursBeforeCheckIn: 48, RefundPercent: 100},
			{HoursBeforeCheckIn: 24, RefundPercent: 50},
		})
		require.NoError(t, err)

		assert.Equal(t, []booking.Tier{
			{HoursBeforeCheckIn: 48, RefundPercent: 100},
			{HoursBeforeCheckIn: 24, RefundPercent: 50},
			{HoursBeforeCheckIn: 0, RefundPercent: 0},
		}, p.Tiers())
	})

	t.Run("duplicate thresholds keep the higher refund", func(t *testing.T) {
		p, err := booking.NewPolicy([]booking.Tier{
			{HoursBeforeCheckIn: 24, RefundPercent: 30},
			{HoursBeforeCheckIn: 24, RefundPercent: 50},
			{HoursBeforeCheckIn: 24, RefundPercent: 40},
		})
		require.NoError(t, err)

		assert.Equal(t, []booking.Tier{{HoursBeforeCheckIn: 24, RefundPercent: 50}}, p.Tiers())
	})
}

func TestRefundPercentAt(t *testing.T) {
	p, err := builder.NewPolicyBuilder().BuildDomain()
	require.NoError(t, err)

	tests := []struct {
		name           string
		hoursRemaining float64
		want           int
	}{
		{name: "well before the widest window", hoursRemaining: 100, want: 100},
		{name: "exactly at the 48h boundary", hoursRemaining: 48, want: 100},
		{name: "between 24h and 48h", hoursRemaining: 30, want: 50},
		{name: "exactly at the 24h boundary", hoursRemaining: 24, want: 50},
		{name: "inside the tightest window", hoursRemaining: 3, want: 0},
		{name: "after check-in", hoursRemaining: -2, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.RefundPercentAt(tt.hoursRemaining))
		})
	}
}

func TestRefundPercentAtWithoutZeroTier(t *testing.T) {
	// A policy whose tightest tier starts at 24h still refunds nothing
	// closer in: no matching tier means 0.
	p, err := booking.NewPolicy([]booking.Tier{
		{HoursBeforeCheckIn: 24, RefundPercent: 50},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, p.RefundPercentAt(10))
	assert.Equal(t, 0, p.RefundPercentAt(-1))
}

func TestDecide(t *testing.T) {
	p, err := builder.NewPolicyBuilder().BuildDomain()
	require.NoError(t, err)

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("thirty hours out refunds half", func(t *testing.T) {
		checkIn := now.Add(30 * time.Hour)
		d := p.Decide(1000, checkIn, now)

		assert.True(t, d.Eligible)
		assert.Equal(t, 50, d.RefundPercent)
		assert.InDelta(t, 500, d.RefundAmount, 1e-9)
	})

	t.Run("inside the tightest window refunds nothing", func(t *testing.T) {
		checkIn := now.Add(2 * time.Hour)
		d := p.Decide(1000, checkIn, now)

		assert.False(t, d.Eligible)
		assert.Zero(t, d.RefundPercent)
		assert.Zero(t, d.RefundAmount)
	})

	t.Run("refund amount is rounded", func(t *testing.T) {
		checkIn := now.Add(30 * time.Hour)
		d := p.Decide(333.33, checkIn, now)

		// 50% of 333.33 is 166.665, half-up to 166.67.
		assert.InDelta(t, 166.67, d.RefundAmount, 1e-9)
	})
}
