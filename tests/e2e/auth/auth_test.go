//go:build e2e

package auth_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	reqdto "resortly/internal/handler/dto/request"
	resdto "resortly/internal/handler/dto/response"
	"resortly/tests/common/dbtest"
	"resortly/tests/common/httptest"
	"resortly/tests/e2e"

	"github.com/stretchr/testify/suite"
)

const (
	signupURL    = "/api/auth/signup"
	loginURL     = "/api/auth/login"
	verifyOtpURL = "/api/auth/verify-otp"
	meURL        = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

// currentChallenge reads the planted or issued code straight from the
// users row, standing in for the verification mail.
func (s *authSuite) currentChallenge(email string) (int, time.Time) {
	var code *int
	var expiresAt *time.Time
	err := s.DB.QueryRow(context.Background(),
		"SELECT otp_code, otp_expires_at FROM users WHERE email = $1", email).
		Scan(&code, &expiresAt)
	s.Require().NoError(err)
	s.Require().NotNil(code, "no challenge stored for %s", email)
	s.Require().NotNil(expiresAt)
	return *code, *expiresAt
}

func (s *authSuite) TestSignupAndVerify() {
	s.Run("signup stores a six digit challenge and verify returns a session", func() {
		signupBody := reqdto.SignupRequest{Email: "new@example.com", Password: "password123"}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, signupURL, signupBody, "")

		var signupResp resdto.SignupResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &signupResp)

		code, expiresAt := s.currentChallenge("new@example.com")
		s.GreaterOrEqual(code, 100000)
		s.LessOrEqual(code, 999999)
		s.WithinDuration(time.Now().Add(2*time.Minute), expiresAt, 30*time.Second)

		verifyBody := reqdto.VerifyOtpRequest{Email: "new@example.com", Otp: code}
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, verifyOtpURL, verifyBody, "")

		var verifyResp resdto.VerifyOtpResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &verifyResp)
		s.NotEmpty(verifyResp.AccessToken)
		s.True(verifyResp.User.IsVerified)

		// The challenge is consumed; the same code never works twice.
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, verifyOtpURL, verifyBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "No pending")

		// The token opens authenticated routes.
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, verifyResp.AccessToken)
		var meResp resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &meResp)
		s.Equal("new@example.com", meResp.Email)
	})

	s.Run("duplicate signup is rejected", func() {
		body := reqdto.SignupRequest{Email: "dup@example.com", Password: "password123"}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, signupURL, body, "")
		s.Equal(http.StatusCreated, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, signupURL, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already registered")
	})
}

func (s *authSuite) TestLoginAndVerify() {
	s.Run("login issues a fresh challenge", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "guest@example.com", "guest")

		loginBody := reqdto.LoginRequest{Email: "guest@example.com", Password: "password123"}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL, loginBody, "")

		var loginResp resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &loginResp)

		code, _ := s.currentChallenge("guest@example.com")
		verifyBody := reqdto.VerifyOtpRequest{Email: "guest@example.com", Otp: code}
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, verifyOtpURL, verifyBody, "")

		var verifyResp resdto.VerifyOtpResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &verifyResp)
		s.NotEmpty(verifyResp.AccessToken)
	})

	s.Run("wrong password never issues a challenge", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "guest@example.com", "guest")

		loginBody := reqdto.LoginRequest{Email: "guest@example.com", Password: "wrongpassword"}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL, loginBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("a correct code past its expiry is rejected", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "guest@example.com", "guest")
		dbtest.SetUserChallenge(s.T(), s.DB, "guest@example.com", 123456, time.Now().Add(-time.Minute))

		verifyBody := reqdto.VerifyOtpRequest{Email: "guest@example.com", Otp: 123456}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, verifyOtpURL, verifyBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "expired")
	})

	s.Run("a wrong code leaves the challenge usable", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "guest@example.com", "guest")
		dbtest.SetUserChallenge(s.T(), s.DB, "guest@example.com", 123456, time.Now().Add(2*time.Minute))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, verifyOtpURL,
			reqdto.VerifyOtpRequest{Email: "guest@example.com", Otp: 999999}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "does not match")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, verifyOtpURL,
			reqdto.VerifyOtpRequest{Email: "guest@example.com", Otp: 123456}, "")
		var verifyResp resdto.VerifyOtpResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &verifyResp)
		s.NotEmpty(verifyResp.AccessToken)
	})
}
