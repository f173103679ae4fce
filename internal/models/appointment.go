package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	WorkerID uint   `gorm:"index:idx_worker_start,priority:1" json:"worker_id"`
	Worker   Worker `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"worker"`

	StartTime time.Time `gorm:"index:idx_worker_start,priority:2" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes string `gorm:"size:255" json:"notes"`

	// Id del evento en Google Calendar; vacío cuando la sincronización falló.
	CalendarEventID string `gorm:"size:120" json:"calendar_event_id"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
