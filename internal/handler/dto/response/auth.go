package response

import (
	"time"

	"resortly/internal/domain/user"
	"resortly/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SignupResponse struct {
	UserID  uuid.UUID `json:"userId"`
	Message string    `json:"message"`
}

type LoginResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"isVerified"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type VerifyOtpResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

func FromUserView(view *queries.UserView) (*UserResponse, error) {
	var resp UserResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:         u.ID(),
		Email:      u.Email().String(),
		Role:       u.Role().String(),
		IsVerified: u.IsVerified(),
		LastLogin:  u.LastLogin(),
		CreatedAt:  u.CreatedAt(),
	}
}
