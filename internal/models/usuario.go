package models

import "time"

type RolUsuario string

const (
	RolAdmin RolUsuario = "admin"
	RolUser  RolUsuario = "user"
)

const (
	EstadoUsuarioActivo   = "Activo"
	EstadoUsuarioInactivo = "Inactivo"
)

type Usuario struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"size:100;uniqueIndex;not null"`
	Nombre       string     `gorm:"size:100;not null"`
	PasswordHash string     `gorm:"size:255;not null"`
	Rol          RolUsuario `gorm:"size:20;not null;default:user"`
	Estado       string     `gorm:"size:20;not null;default:Activo"`
	UltimoLogin  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
