package main

import (
	"log"
	"strings"

	"segmentacion-backend/internal/admin"
	"segmentacion-backend/internal/auth"
	"segmentacion-backend/internal/config"
	"segmentacion-backend/internal/database"
	"segmentacion-backend/internal/models"
	"segmentacion-backend/internal/segmentacion"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"ok":    false,
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"ok":    false,
				"error": "Error interno del servidor",
			})
		},
	})

	// CORS: origins separados por coma en la config
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth pública
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protegidas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Segmentación
	seg := protected.Group("/segmentacion")
	seg.Get("/tiendas/activas", segmentacion.TiendasActivasHandler())
	seg.Get("/segmentaciones/ultima", segmentacion.UltimaSegmentacionHandler())
	seg.Post("/segmentaciones", segmentacion.GuardarSegmentacionHandler(cfg))
	seg.Get("/export/csv", segmentacion.ExportCSVHandler())

	// Administración
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRol(models.RolAdmin))

	// Gestión de usuarios
	adminRoutes.Get("/usuarios", admin.ListUsuariosHandler())
	adminRoutes.Post("/usuarios", admin.CreateUsuarioHandler())
	adminRoutes.Put("/usuarios/:id/rol", admin.CambiarRolHandler())
	adminRoutes.Put("/usuarios/:id/password", admin.ResetPasswordHandler())

	// Reset total de segmentaciones (solo pruebas/puesta en marcha)
	adminRoutes.Post("/segmentaciones/reset", admin.ResetSegmentacionesHandler())

	log.Println("Servidor escuchando en puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
