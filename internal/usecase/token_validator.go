package usecase

import (
	"campus-placement/internal/domain/user"
	"campus-placement/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator turns a bearer token into a verified identity. Shared by the
// HTTP middleware and the WebSocket handshake.
type TokenValidator interface {
	ValidateToken(tokenString string) (user.Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (user.Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return user.Identity{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return user.Identity{}, err
	}

	orgID := uuid.Nil
	if claims.OrgID != nil {
		orgID = *claims.OrgID
	}
	return user.NewIdentity(claims.UserID, role, orgID)
}
