//go:build e2e

package helper

import (
	"testing"
	"time"

	"resortly/internal/domain/user"
	"resortly/internal/pkg/config"
	"resortly/internal/pkg/jwt"
	"resortly/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTTestHelper mints session tokens for seeded users so e2e tests can
// call authenticated routes without walking the OTP flow each time.
type JWTTestHelper struct {
	svc *jwt.Service
}

func NewJWTTestHelper(jwtCfg config.JWTConfig) *JWTTestHelper {
	duration, err := time.ParseDuration(jwtCfg.Duration)
	if err != nil {
		duration = time.Hour
	}
	return &JWTTestHelper{svc: jwt.NewService(jwtCfg.Secret, duration)}
}

// CreateVerifiedUser inserts a verified user row and returns its id
// with a valid session token.
func (h *JWTTestHelper) CreateVerifiedUser(t *testing.T, db dbtest.DBLike, email string, role user.Role) (uuid.UUID, string) {
	t.Helper()

	userID := dbtest.CreateTestUser(t, db, email, role.String())
	token, err := h.svc.GenerateToken(userID, role)
	require.NoError(t, err)
	return userID, token
}
