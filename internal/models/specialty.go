package models

import "time"

// Specialty agrupa servicios relacionados (ej: "Uñas", "Masajes").
type Specialty struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	Services []Service `gorm:"constraint:OnUpdate:CASCADE;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
