package admin

import (
	"strings"

	"segmentacion-backend/internal/database"
	"segmentacion-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UsuarioResponse struct {
	ID          uint   `json:"id_usuario"`
	Email       string `json:"email"`
	Nombre      string `json:"nombre"`
	Rol         string `json:"rol"`
	Estado      string `json:"estado_usuario"`
	UltimoLogin string `json:"ultimo_login,omitempty"`
	CreatedAt   string `json:"fecha_creacion"`
}

type CreateUsuarioRequest struct {
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	Password string `json:"password"`
	Rol      string `json:"rol"` // admin | user, cualquier otro valor cae a user
}

type CambiarRolRequest struct {
	Rol string `json:"rol"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

func validarRol(rol string) models.RolUsuario {
	switch models.RolUsuario(strings.ToLower(strings.TrimSpace(rol))) {
	case models.RolAdmin:
		return models.RolAdmin
	default:
		return models.RolUser
	}
}

func toUsuarioResponse(u models.Usuario) UsuarioResponse {
	res := UsuarioResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nombre:    u.Nombre,
		Rol:       string(u.Rol),
		Estado:    u.Estado,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.UltimoLogin != nil {
		res.UltimoLogin = u.UltimoLogin.Format("2006-01-02 15:04:05")
	}
	return res
}

// GET /api/admin/usuarios
func ListUsuariosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var usuarios []models.Usuario
		if err := database.DB.Order("id desc").Find(&usuarios).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los usuarios")
		}

		res := make([]UsuarioResponse, 0, len(usuarios))
		for _, u := range usuarios {
			res = append(res, toUsuarioResponse(u))
		}
		return c.JSON(res)
	}
}

// POST /api/admin/usuarios
func CreateUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUsuarioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Nombre = strings.TrimSpace(body.Nombre)

		if body.Email == "" || body.Nombre == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email, nombre y contraseña son obligatorios")
		}

		var exist models.Usuario
		if err := database.DB.Where("email = ?", body.Email).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Este email ya está registrado")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el hash de la contraseña")
		}

		user := models.Usuario{
			Email:        body.Email,
			Nombre:       body.Nombre,
			PasswordHash: string(hash),
			Rol:          validarRol(body.Rol),
			Estado:       models.EstadoUsuarioActivo,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el usuario")
		}

		return c.Status(fiber.StatusCreated).JSON(toUsuarioResponse(user))
	}
}

// PUT /api/admin/usuarios/:id/rol
func CambiarRolHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.Usuario
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}

		var body CambiarRolRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		user.Rol = validarRol(body.Rol)
		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el rol")
		}

		return c.JSON(toUsuarioResponse(user))
	}
}

// PUT /api/admin/usuarios/:id/password
func ResetPasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.Usuario
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}

		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "La contraseña no puede estar vacía")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el hash de la contraseña")
		}

		user.PasswordHash = string(hash)
		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la contraseña")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
