package admin

import (
	"segmentacion-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

// POST /api/admin/segmentaciones/reset
// Limpia por completo las tablas de segmentación. TRUNCATE para reiniciar rápido.
func ResetSegmentacionesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := database.DB.Exec(`
			TRUNCATE TABLE segmentacion_detalles, segmentacions
			RESTART IDENTITY
		`).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron reiniciar las segmentaciones")
		}

		return c.JSON(fiber.Map{
			"ok":      true,
			"mensaje": "Segmentaciones reiniciadas correctamente.",
		})
	}
}
