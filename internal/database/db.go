package database

import (
	"log"

	"segmentacion-backend/internal/config"
	"segmentacion-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a Postgres: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Usuario{},
		&models.Tienda{},
		&models.Segmentacion{},
		&models.SegmentacionDetalle{},
		&models.ReferenciaVista{},
	)
	if err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	// Índice compuesto para el lookup de última segmentación por referencia
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_segmentacions_ref_fecha ON segmentacions(referencia, fecha_creacion DESC)")

	log.Println("Conexión a base de datos lista. Migración completada.")
}
