package usecase

import (
	"lastbite/internal/domain/user"
	"lastbite/internal/pkg/errs"
	"lastbite/internal/pkg/jwt"

	"github.com/google/uuid"
)

var (
	ErrTokenValidation = errs.New("token validation failed")
	ErrTokenGeneration = errs.New("token generation failed")
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

// TokenIssuer mints access tokens for local tooling.
type TokenIssuer interface {
	IssueToken(userID uuid.UUID, role string) (string, error)
}

type authUseCaseImpl struct {
	jwtService *jwt.Service
}

func newAuthUseCase(jwtService *jwt.Service) *authUseCaseImpl {
	return &authUseCaseImpl{jwtService: jwtService}
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return newAuthUseCase(jwtService)
}

func NewTokenIssuer(jwtService *jwt.Service) TokenIssuer {
	return newAuthUseCase(jwtService)
}

func (a *authUseCaseImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := a.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrTokenValidation)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrTokenValidation)
	}

	return claims.UserID, role, nil
}

func (a *authUseCaseImpl) IssueToken(userID uuid.UUID, role string) (string, error) {
	r, err := user.NewRole(role)
	if err != nil {
		return "", errs.Mark(err, ErrTokenGeneration)
	}
	if userID == uuid.Nil {
		userID = uuid.New()
	}
	token, err := a.jwtService.GenerateToken(userID, r)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "sign token"), ErrTokenGeneration)
	}
	return token, nil
}
