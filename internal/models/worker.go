package models

import "time"

// Worker es la especialista que atiende citas según su horario semanal.
type Worker struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name       string `gorm:"size:100;not null" json:"name"`
	DocumentID string `gorm:"size:20;uniqueIndex;not null" json:"document_id"`
	Phone      string `gorm:"size:20" json:"phone"`
	Email      string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Active     bool   `gorm:"default:true" json:"active"`

	Schedules []WorkerSchedule `gorm:"constraint:OnDelete:CASCADE;" json:"schedules,omitempty"`
	Services  []Service        `gorm:"many2many:worker_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
