//go:build unit

package otp_test

import (
	"testing"
	"time"

	"resortly/internal/domain/otp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedGenerator struct{ code int }

func (g fixedGenerator) Code() (int, error) { return g.code, nil }

func TestIssue(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("expiry is now plus validity", func(t *testing.T) {
		ch, err := otp.Issue(fixedGenerator{code: 123456}, now, otp.DefaultValidity)
		require.NoError(t, err)

		assert.Equal(t, 123456, ch.Code())
		assert.True(t, ch.ExpiresAt().Equal(now.Add(2*time.Minute)))
	})

	t.Run("rejects non-positive validity", func(t *testing.T) {
		_, err := otp.Issue(fixedGenerator{code: 123456}, now, 0)
		assert.ErrorIs(t, err, otp.ErrInvalidValidity)

		_, err = otp.Issue(fixedGenerator{code: 123456}, now, -time.Minute)
		assert.ErrorIs(t, err, otp.ErrInvalidValidity)
	})
}

func TestVerify(t *testing.T) {
	issuedAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	ch, err := otp.Issue(fixedGenerator{code: 654321}, issuedAt, otp.DefaultValidity)
	require.NoError(t, err)

	tests := []struct {
		name      string
		candidate int
		at        time.Time
		errIs     error
	}{
		{
			name:      "correct code inside the window",
			candidate: 654321,
			at:        issuedAt.Add(time.Minute),
		},
		{
			name:      "wrong code",
			candidate: 111111,
			at:        issuedAt.Add(time.Minute),
			errIs:     otp.ErrMismatch,
		},
		{
			name:      "wrong code after expiry reports the mismatch",
			candidate: 111111,
			at:        issuedAt.Add(10 * time.Minute),
			errIs:     otp.ErrMismatch,
		},
		{
			name:      "correct code one minute late",
			candidate: 654321,
			at:        issuedAt.Add(3 * time.Minute),
			errIs:     otp.ErrExpired,
		},
		{
			name:      "expiry instant itself is expired",
			candidate: 654321,
			at:        issuedAt.Add(2 * time.Minute),
			errIs:     otp.ErrExpired,
		},
		{
			name:      "one nanosecond before expiry still verifies",
			candidate: 654321,
			at:        issuedAt.Add(2*time.Minute - time.Nanosecond),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ch.Verify(tt.candidate, tt.at)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCryptoGeneratorRange(t *testing.T) {
	gen := otp.NewCryptoGenerator()
	for i := 0; i < 100; i++ {
		code, err := gen.Code()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, code, otp.CodeMin)
		assert.LessOrEqual(t, code, otp.CodeMax)
	}
}
