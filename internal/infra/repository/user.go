package repository

import (
	"context"
	"time"

	"resortly/internal/domain/user"
	"resortly/internal/infra"
	"resortly/internal/infra/db"
	"resortly/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (uuid.UUID, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, is_verified, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID(), u.Email().String(), u.PasswordHash(), u.Role().String(), u.IsVerified(), u.IsActive(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return u.ID(), nil
}

// SaveChallenge overwrites the challenge fields, superseding any prior
// unconsumed code.
func (r *UserRepository) SaveChallenge(ctx context.Context, id uuid.UUID, code int, expiresAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET otp_code = $2, otp_expires_at = $3, updated_at = now()
		WHERE id = $1`,
		id, code, expiresAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save otp challenge", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

// ConsumeChallenge clears the challenge and marks the identity
// verified in one statement.
func (r *UserRepository) ConsumeChallenge(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET otp_code = NULL, otp_expires_at = NULL, is_verified = TRUE, updated_at = now()
		WHERE id = $1`,
		id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to consume otp challenge", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
