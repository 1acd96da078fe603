package readstore

import (
	"context"
	"strings"

	"resortly/internal/infra"
	"resortly/internal/infra/db"
	"resortly/internal/pkg/pgconv"
	"resortly/internal/usecase/queries"
	"resortly/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, role, is_verified, last_login, created_at
		FROM users
		WHERE id = $1 AND is_active`, id)

	var view queries.UserView
	err := row.Scan(&view.ID, &view.Email, &view.Role, &view.IsVerified, &view.LastLogin, &view.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

const userSnapshotColumns = `
	id, email, password_hash, role, is_verified,
	otp_code, otp_expires_at,
	last_login, is_active, created_at, updated_at`

func (r *UserReadStore) SnapshotByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	row := r.db.QueryRow(ctx, `SELECT`+userSnapshotColumns+` FROM users WHERE email = $1`, normalized)
	return scanUserSnapshot(row)
}

func (r *UserReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	row := r.db.QueryRow(ctx, `SELECT`+userSnapshotColumns+` FROM users WHERE id = $1`, id)
	return scanUserSnapshot(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserSnapshot(row rowScanner) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	err := row.Scan(
		&snap.ID, &snap.Email, &snap.PasswordHash, &snap.Role, &snap.IsVerified,
		&snap.OtpCode, &snap.OtpExpiresAt,
		&snap.LastLogin, &snap.IsActive, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &snap, nil
}
