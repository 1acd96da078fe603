package request

import (
	"resortly/internal/domain/user"
)

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

func (r SignupRequest) ToDomain() (user.Email, user.Password, user.Role, error) {
	email, err := user.NewEmail(r.Email)
	if err != nil {
		return user.Email{}, user.Password{}, "", err
	}
	pass, err := user.NewPassword(r.Password)
	if err != nil {
		return user.Email{}, user.Password{}, "", err
	}

	roleStr := r.Role
	if roleStr == "" {
		roleStr = user.RoleGuest.String()
	}
	role, err := user.NewRole(roleStr)
	if err != nil {
		return user.Email{}, user.Password{}, "", err
	}
	return email, pass, role, nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r LoginRequest) ToDomain() (user.Credentials, error) {
	email, err := user.NewEmail(r.Email)
	if err != nil {
		return user.Credentials{}, err
	}
	pass, err := user.NewPassword(r.Password)
	if err != nil {
		return user.Credentials{}, err
	}
	return user.NewCredentials(email, pass), nil
}

type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   int    `json:"otp" binding:"required,min=100000,max=999999"`
}
