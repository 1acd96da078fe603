package usecase

import (
	"resortly/internal/pkg/jwt"
)

// TokenValidator is the middleware-facing slice of the JWT service.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

func NewTokenValidator(svc *jwt.Service) TokenValidator {
	return svc
}
