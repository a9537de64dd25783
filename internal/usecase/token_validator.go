package usecase

import (
	"facility-booking/internal/domain/operator"
	"facility-booking/internal/pkg/jwt"
)

// Identity is what a valid operator token resolves to.
type Identity struct {
	Operator *operator.Operator
	// Currency is empty when the token does not carry one.
	Currency string
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (*Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (*Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	role, err := operator.NewRole(claims.Role)
	if err != nil {
		return nil, err
	}

	op, err := operator.New(claims.UserID, claims.SiteID, role)
	if err != nil {
		return nil, err
	}

	return &Identity{Operator: op, Currency: claims.Currency}, nil
}
