package auth

import (
	"strings"
	"time"

	"segmentacion-backend/internal/config"
	"segmentacion-backend/internal/database"
	"segmentacion-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.Usuario
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email o contraseña incorrectos")
		}

		if strings.TrimSpace(user.Estado) != models.EstadoUsuarioActivo {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuario inactivo")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email o contraseña incorrectos")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el token")
		}

		now := time.Now()
		database.DB.Model(&user).Update("ultimo_login", now)

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":     user.ID,
				"nombre": user.Nombre,
				"email":  user.Email,
				"rol":    user.Rol,
			},
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)

		var user models.Usuario
		if userID, ok := userIDVal.(uint); ok {
			if err := database.DB.First(&user, userID).Error; err == nil {
				return c.JSON(fiber.Map{
					"user_id": user.ID,
					"nombre":  user.Nombre,
					"email":   user.Email,
					"rol":     user.Rol,
				})
			}
		}

		return c.JSON(fiber.Map{
			"user_id": userIDVal,
			"rol":     c.Locals(CtxUserRolKey),
		})
	}
}
