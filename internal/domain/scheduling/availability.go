package scheduling

import "time"

type AvailabilityInput struct {
	ServiceID uint
	// WorkerID restricts the search to one worker; zero means all qualified
	// workers.
	WorkerID uint
	Date     time.Time
}

type Slot struct {
	WorkerID   uint      `json:"worker_id"`
	WorkerName string    `json:"worker_name"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}
