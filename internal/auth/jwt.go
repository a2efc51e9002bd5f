package auth

import (
	"time"

	"segmentacion-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type JWTCustomClaims struct {
	UserID uint              `json:"user_id"`
	Email  string            `json:"email"`
	Rol    models.RolUsuario `json:"rol"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, u *models.Usuario) (string, error) {
	claims := &JWTCustomClaims{
		UserID: u.ID,
		Email:  u.Email,
		Rol:    u.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
