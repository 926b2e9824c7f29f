package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Zuby128/restorder-admin/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID       uuid.UUID
	RestaurantNo string
	Role         enums.StaffRole
	JTI          string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID       uuid.UUID       `json:"user_id"`
	RestaurantNo string          `json:"restaurant_no"`
	Role         enums.StaffRole `json:"role"`
	jwt.RegisteredClaims
}
