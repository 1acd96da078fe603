//go:build unit || e2e

package builder

import (
	"time"

	"resortly/internal/domain/user"
	"resortly/internal/usecase/queries"
	"resortly/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsVerified   bool
	OtpCode      *int
	OtpExpiresAt *time.Time
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "guest@example.com",
		PasswordHash: "hashed_password",
		Role:         "guest",
		IsActive:     true,
	}
}

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	return user.NewUser(email, u.PasswordHash, role), nil
}

func (u *UserBuilder) BuildSnapshot() *shared.UserSnapshot {
	now := time.Now()
	return &shared.UserSnapshot{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsVerified:   u.IsVerified,
		OtpCode:      u.OtpCode,
		OtpExpiresAt: u.OtpExpiresAt,
		IsActive:     u.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  time.Now(),
	}
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithChallenge(code int, expiresAt time.Time) *UserBuilder {
	u.OtpCode = &code
	u.OtpExpiresAt = &expiresAt
	return u
}

func (u *UserBuilder) Verified() *UserBuilder {
	u.IsVerified = true
	return u
}
