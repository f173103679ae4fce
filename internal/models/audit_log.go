package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// "admin" para el panel, "agent" para el chat.
	Actor  string `gorm:"size:20;not null" json:"actor"`
	Action string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
