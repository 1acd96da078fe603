//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"resortly/internal/domain/otp"
	"resortly/internal/handler/api"
	reqdto "resortly/internal/handler/dto/request"
	resdto "resortly/internal/handler/dto/response"
	"resortly/internal/pkg/config"
	"resortly/internal/usecase/commands"
	"resortly/internal/usecase/queries"
	"resortly/tests/common/builder"
	"resortly/tests/common/httptest"
	"resortly/tests/common/testutil"
	commandsmock "resortly/tests/mock/commands"
	queriesmock "resortly/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
	currentUser  uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, config.NewTestConfig())
	s.currentUser = uuid.New()

	s.router.POST("/auth/signup", s.handler.Signup)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/verify-otp", s.handler.VerifyOtp)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		// Stand-in for the auth middleware.
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.currentUser)
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestSignup() {
	url := "/auth/signup"
	reqBody := reqdto.SignupRequest{Email: "guest@example.com", Password: "password123"}

	s.Run("success: returns 201 with the new user id", func() {
		newID := uuid.New()
		s.mockCommands.EXPECT().Signup(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(newID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.SignupResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(newID, response.UserID)
		s.Contains(response.Message, "Verification code sent")
	})

	s.Run("error: 409 when the email is taken", func() {
		s.mockCommands.EXPECT().Signup(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrEmailAlreadyExists).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already registered")
	})

	s.Run("error: 400 on validation failures", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing email", mutate: testutil.Field("email", nil)},
			{name: "malformed email", mutate: testutil.Field("email", "not-an-email")},
			{name: "missing password", mutate: testutil.Field("password", nil)},
			{name: "short password", mutate: testutil.Field("password", strings.Repeat("a", 7))},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := reqdto.LoginRequest{Email: "guest@example.com", Password: "password123"}

	s.Run("success: returns 200 and reports the code was sent", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Contains(response.Message, "Verification code sent")
	})

	s.Run("error: 401 on bad credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("error: 403 when the account is deactivated", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(commands.ErrUserInactive).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "inactive")
	})
}

func (s *AuthHandlerTestSuite) TestVerifyOtp() {
	url := "/auth/verify-otp"
	reqBody := reqdto.VerifyOtpRequest{Email: "guest@example.com", Otp: 123456}

	s.Run("success: returns the session token and sets the cookie", func() {
		u, err := builder.NewUserBuilder().BuildDomain()
		s.Require().NoError(err)
		s.mockCommands.EXPECT().VerifyOtp(gomock.Any(), reqBody.Email, reqBody.Otp).
			Return("test-jwt-token", u, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.VerifyOtpResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("test-jwt-token", response.AccessToken)
		s.Equal("guest@example.com", response.User.Email)

		cookie := httptest.ExtractCookie(rec, "access_token")
		s.Require().NotNil(cookie)
		s.Equal("test-jwt-token", cookie.Value)
	})

	s.Run("error: 401 variants", func() {
		cases := []struct {
			name     string
			cmdErr   error
			contains string
		}{
			{name: "wrong code", cmdErr: otp.ErrMismatch, contains: "does not match"},
			{name: "expired code", cmdErr: otp.ErrExpired, contains: "expired"},
			{name: "nothing pending", cmdErr: otp.ErrNoActiveChallenge, contains: "No pending"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().VerifyOtp(gomock.Any(), reqBody.Email, reqBody.Otp).
					Return("", nil, tc.cmdErr).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, tc.contains)
			})
		}
	})

	s.Run("error: 400 when the code is out of range", func() {
		for _, code := range []int{0, 99999, 1000000} {
			body := testutil.DtoMap(s.T(), reqBody, testutil.Field("otp", code))
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
			s.Equal(http.StatusBadRequest, rec.Code)
		}
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "token")

	s.Equal(http.StatusNoContent, rec.Code)
	cookie := httptest.ExtractCookie(rec, "access_token")
	s.Require().NotNil(cookie)
	s.Less(cookie.MaxAge, 0)
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns the current user view", func() {
		view := builder.NewUserBuilder().BuildView()
		view.ID = s.currentUser
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.currentUser).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var response resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Email, response.Email)
	})

	s.Run("error: 401 without authentication", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "not authenticated")
	})

	s.Run("error: 404 when the user row is gone", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.currentUser).
			Return(nil, queries.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})
}
