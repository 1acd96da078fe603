// Package otp implements the time-bound one-time-password challenge
// that gates admin and guest authentication.
package otp

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"
)

var (
	ErrNoActiveChallenge = errors.New("no active otp challenge")
	ErrExpired           = errors.New("otp has expired")
	ErrMismatch          = errors.New("otp does not match")
	ErrInvalidValidity   = errors.New("otp validity must be positive")
)

const (
	// 6-digit codes, uniform over [CodeMin, CodeMax].
	CodeMin = 100000
	CodeMax = 999999

	DefaultValidity = 2 * time.Minute
)

// Generator produces challenge codes. The production generator draws
// from crypto/rand; tests substitute a fixed sequence.
type Generator interface {
	Code() (int, error)
}

type CryptoGenerator struct{}

func NewCryptoGenerator() Generator {
	return &CryptoGenerator{}
}

func (g *CryptoGenerator) Code() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(CodeMax-CodeMin+1))
	if err != nil {
		return 0, err
	}
	return CodeMin + int(n.Int64()), nil
}

// Challenge is an issued-but-unconsumed code with its absolute expiry.
// Issuing a new challenge supersedes any prior one; the two never stack.
type Challenge struct {
	code      int
	expiresAt time.Time
}

func Issue(gen Generator, now time.Time, validity time.Duration) (Challenge, error) {
	if validity <= 0 {
		return Challenge{}, ErrInvalidValidity
	}
	code, err := gen.Code()
	if err != nil {
		return Challenge{}, err
	}
	return Challenge{
		code:      code,
		expiresAt: now.Add(validity),
	}, nil
}

// Reconstruct rebuilds a persisted challenge.
func Reconstruct(code int, expiresAt time.Time) Challenge {
	return Challenge{code: code, expiresAt: expiresAt}
}

// Verify checks candidate at one now snapshot. A wrong code reports
// ErrMismatch and leaves the challenge intact for retry. A correct code
// at or past expiry reports ErrExpired; an expired code is never
// silently accepted, however correct. Only a nil return consumes the
// challenge (the caller clears it).
func (c Challenge) Verify(candidate int, now time.Time) error {
	if candidate != c.code {
		return ErrMismatch
	}
	if !now.Before(c.expiresAt) {
		return ErrExpired
	}
	return nil
}

func (c Challenge) Code() int            { return c.code }
func (c Challenge) ExpiresAt() time.Time { return c.expiresAt }
