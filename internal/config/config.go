package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Tallas por defecto cuando la referencia no trae curva propia
	DefaultTallas []string

	// Usuario asignado a segmentaciones guardadas sin sesión (MVP)
	DefaultUserID uint
}

func Load() *Config {
	// .env opcional: en producción las variables vienen del entorno
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=segmentacion port=5432 sslmode=disable"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		DefaultTallas: splitCSV(getEnv("DEFAULT_TALLAS_MVP", "S,M,L,XL")),
		DefaultUserID: 1,
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] Falta JWT_SECRET en el entorno. Es obligatorio para producción.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET debe tener al menos 32 caracteres.")
	}
	if strings.Contains(cfg.DatabaseDSN, "password=postgres") {
		log.Println("[WARN] POSTGRES_DSN usa el valor por defecto, configura tu propia conexión para producción.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
