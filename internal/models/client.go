package models

import "time"

// Cliente del spa, sin login. Se crea desde el panel o desde el chat.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name       string `gorm:"size:100;not null" json:"name"`
	DocumentID string `gorm:"size:20" json:"document_id"`
	Phone      string `gorm:"size:20" json:"phone"`
	Notes      string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
