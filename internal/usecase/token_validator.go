package usecase

import (
	"gocart/internal/domain/user"
	"gocart/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (user.Caller, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (user.Caller, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return user.Caller{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return user.Caller{}, err
	}

	return user.NewCaller(claims.UserID, role, claims.Plans)
}
