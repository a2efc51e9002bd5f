package models

import "time"

// ReferenciaVista: rastro de qué referencias se han visto/segmentado.
// SegmentedAt alimenta el badge "segmentada" de las cards.
type ReferenciaVista struct {
	ReferenciaSku  string    `gorm:"primaryKey;size:80"`
	FirstSeen      time.Time `gorm:"not null"`
	LastSeen       time.Time `gorm:"not null"`
	SegmentedAt    *time.Time
	AcknowledgedAt *time.Time
}
