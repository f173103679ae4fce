package models

import "time"

// WorkerSchedule is one weekday of a worker's weekly schedule. Times are
// wall-clock "HH:MM" strings in the center's timezone.
type WorkerSchedule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	WorkerID uint `gorm:"index:idx_worker_weekday,unique" json:"worker_id"`

	Weekday int `gorm:"index:idx_worker_weekday,unique" json:"weekday"`

	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
