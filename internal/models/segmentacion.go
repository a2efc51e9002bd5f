package models

import "time"

const (
	EstadoSegmentacionActiva   = "Activa"
	EstadoSegmentacionInactiva = "Inactiva"

	EstadoDetalleActivo   = "Activo"
	EstadoDetalleInactivo = "Inactivo"
)

// Segmentacion: cabecera. Cada guardado crea una cabecera nueva y la
// anterior queda Inactiva (histórico completo, nunca se sobreescribe).
type Segmentacion struct {
	ID             uint      `gorm:"primaryKey"`
	IDUsuario      uint      `gorm:"index;not null"`
	FechaCreacion  time.Time `gorm:"index;not null"`
	Estado         string    `gorm:"size:20;not null;default:Activa"`
	Referencia     string    `gorm:"size:80;index;not null"` // referenciaSku
	CodigoBarras   string    `gorm:"size:80"`
	Descripcion    string    `gorm:"size:255"`
	Categoria      string    `gorm:"size:80"`
	Linea          string    `gorm:"size:80"`
	TipoPortafolio string    `gorm:"size:80"`
	PrecioUnitario float64
	EstadoSku      string `gorm:"size:40"`
	Cuento         string `gorm:"size:120"`
	TipoInventario string `gorm:"size:40"`

	Detalle []SegmentacionDetalle `gorm:"foreignKey:SegmentacionID"`
}

type SegmentacionDetalle struct {
	ID                 uint      `gorm:"primaryKey"`
	SegmentacionID     uint      `gorm:"index;not null"`
	LlaveNaval         string    `gorm:"size:120;not null"`
	Talla              string    `gorm:"size:20;not null"`
	Cantidad           int       `gorm:"not null"`
	Estado             string    `gorm:"size:20;not null;default:Activo"`
	FechaActualizacion time.Time `gorm:"index;not null"`
}
