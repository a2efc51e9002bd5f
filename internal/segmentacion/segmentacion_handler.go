package segmentacion

import (
	"errors"
	"strings"

	"segmentacion-backend/internal/config"
	"segmentacion-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

// GET /api/segmentacion/segmentaciones/ultima?referenciaSku=
func UltimaSegmentacionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref := strings.TrimSpace(c.Query("referenciaSku"))
		if ref == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok":    false,
				"error": "Falta query param: referenciaSku",
			})
		}

		data, err := UltimaSegmentacion(database.DB, ref)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"ok":    false,
				"error": "No se pudo consultar la última segmentación",
			})
		}

		return c.JSON(fiber.Map{"ok": true, "data": data})
	}
}

// POST /api/segmentacion/segmentaciones
// Cuerpo: cabecera + detalle [{llave_naval, talla, cantidad}].
// Un guardado sin filas activas es válido: deja la referencia sin segmentar.
func GuardarSegmentacionHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GuardarRequest
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok":    false,
				"error": "Cuerpo de la petición inválido",
			})
		}

		result, err := GuardarSegmentacion(database.DB, body, cfg.DefaultUserID)
		if err != nil {
			if errors.Is(err, ErrFaltaReferencia) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"ok":    false,
					"error": err.Error(),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"ok":    false,
				"error": "No se pudo guardar la segmentación",
			})
		}

		return c.JSON(fiber.Map{
			"ok":              true,
			"id_segmentacion": result.IDSegmentacion,
			"mensaje":         result.Mensaje,
			"resumen":         result.Resumen,
		})
	}
}
