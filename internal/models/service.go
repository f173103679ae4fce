package models

import "time"

type Service struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	SpecialtyID uint `json:"specialty_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	Specialty Specialty `gorm:"constraint:OnUpdate:CASCADE;" json:"specialty,omitempty"`
	Workers   []Worker  `gorm:"many2many:worker_services;" json:"workers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
