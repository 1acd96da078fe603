package api

import (
	"errors"
	"net/http"
	"time"

	"resortly/internal/domain/otp"
	reqdto "resortly/internal/handler/dto/request"
	resdto "resortly/internal/handler/dto/response"
	"resortly/internal/handler/httperr"
	"resortly/internal/handler/middleware"
	"resortly/internal/pkg/config"
	"resortly/internal/pkg/cookie"
	"resortly/internal/usecase/commands"
	"resortly/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	userQueries  queries.UserQueries
	jwtCfg       config.JWTConfig
}

func NewAuthHandler(authCommands commands.AuthCommands, userQueries queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		userQueries:  userQueries,
		jwtCfg:       cfg.JWT,
	}
}

// @Summary User signup
// @Description Register a new account; a verification code is sent by mail
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.SignupRequest true "Signup request"
// @Success 201 {object} resdto.SignupResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req reqdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	email, pass, role, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	id, err := h.authCommands.Signup(c.Request.Context(), email, pass, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Email is already registered",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.SignupResponse{
		UserID:  id,
		Message: "Verification code sent",
	})
}

// @Summary User login
// @Description Check credentials and send a one-time verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	credentials, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	if err := h.authCommands.Login(c.Request.Context(), credentials); err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, commands.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{
		Message: "Verification code sent",
	})
}

// @Summary Verify one-time code
// @Description Exchange the emailed verification code for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.VerifyOtpRequest true "Verification request"
// @Success 200 {object} resdto.VerifyOtpResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req reqdto.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	token, u, err := h.authCommands.VerifyOtp(c.Request.Context(), req.Email, req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Verification code does not match",
			})
		case errors.Is(err, otp.ErrExpired):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Verification code has expired",
			})
		case errors.Is(err, otp.ErrNoActiveChallenge):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "No pending verification",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	if duration, err := time.ParseDuration(h.jwtCfg.Duration); err == nil {
		cookie.SetAccessToken(c, token, duration)
	}

	c.JSON(http.StatusOK, resdto.VerifyOtpResponse{
		AccessToken: token,
		User:        resdto.FromUser(u),
	})
}

// @Summary User logout
// @Description Logout current user session
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessToken(c)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	view, err := h.userQueries.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	resp, err := resdto.FromUserView(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}
