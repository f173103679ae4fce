// Package calendar mirrors confirmed bookings into the spa's Google
// Calendar. The mirror is advisory: callers treat every failure here as
// soft and never roll back local state because of it.
package calendar

import (
	"context"
	"time"
)

type Event struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string
}

type Client interface {
	// CreateEvent returns the id of the created event.
	CreateEvent(ctx context.Context, ev Event) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// Noop stands in when no calendar credentials are configured.
type Noop struct{}

func (Noop) CreateEvent(ctx context.Context, ev Event) (string, error) { return "", nil }
func (Noop) DeleteEvent(ctx context.Context, eventID string) error     { return nil }
