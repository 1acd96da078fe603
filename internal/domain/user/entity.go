package user

import (
	"time"

	"resortly/internal/domain/otp"

	"github.com/google/uuid"
)

// User is a guest or admin identity. Verification is gated by an OTP
// challenge: present challenge fields mean issued-but-unconsumed, cleared
// fields plus the verified flag mean consumed.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
	isVerified   bool
	challenge    *otp.Challenge
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, passwordHash string, role Role) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
	}
}

func Reconstruct(
	id uuid.UUID,
	email Email,
	passwordHash string,
	role Role,
	isVerified bool,
	challenge *otp.Challenge,
	lastLogin *time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isVerified:   isVerified,
		challenge:    challenge,
		lastLogin:    lastLogin,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// AttachChallenge replaces any prior unconsumed challenge with ch.
func (u *User) AttachChallenge(ch otp.Challenge) {
	u.challenge = &ch
}

// VerifyChallenge runs the OTP transition at one now snapshot. Wrong or
// expired codes leave the challenge attached; only success consumes it
// and marks the identity verified. With nothing attached, including
// right after a successful verify, the result is ErrNoActiveChallenge,
// never a stale success.
func (u *User) VerifyChallenge(candidate int, now time.Time) error {
	if u.challenge == nil {
		return otp.ErrNoActiveChallenge
	}
	if err := u.challenge.Verify(candidate, now); err != nil {
		return err
	}
	u.challenge = nil
	u.isVerified = true
	return nil
}

func (u *User) ID() uuid.UUID             { return u.id }
func (u *User) Email() Email              { return u.email }
func (u *User) PasswordHash() string      { return u.passwordHash }
func (u *User) Role() Role                { return u.role }
func (u *User) IsVerified() bool          { return u.isVerified }
func (u *User) Challenge() *otp.Challenge { return u.challenge }
func (u *User) LastLogin() *time.Time     { return u.lastLogin }
func (u *User) IsActive() bool            { return u.isActive }
func (u *User) CreatedAt() time.Time      { return u.createdAt }
func (u *User) UpdatedAt() time.Time      { return u.updatedAt }
