package models

import "time"

// Tienda: fila de la maestra de tiendas por línea comercial.
// La llave naval identifica la combinación bodega+dependencia+línea.
type Tienda struct {
	ID              uint   `gorm:"primaryKey"`
	LlaveNaval      string `gorm:"size:120;index;not null"`
	CodBodega       string `gorm:"size:20"`
	CodDependencia  string `gorm:"size:20"`
	Dependencia     string `gorm:"size:120"`
	DescDependencia string `gorm:"size:120"`
	Ciudad          string `gorm:"size:80"`
	Zona            string `gorm:"size:80"`
	Clima           string `gorm:"size:40"`
	Linea           string `gorm:"size:80"`
	LineaNorm       string `gorm:"size:80;index"` // "17 - Bebito" -> "bebito"
	EstadoTienda    string `gorm:"size:20"`
	EstadoLinea     string `gorm:"size:20"`
	TesteoFnl       string `gorm:"size:40"`
	RankinLinea     string `gorm:"size:10"` // AA / A / B / C / NA

	// Métricas precalculadas que alimenta el job de ventas
	VentaPromedio  float64
	CPD            float64
	IndiceRotacion float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
