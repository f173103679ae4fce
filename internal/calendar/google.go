package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type GoogleClient struct {
	svc        *gcal.Service
	calendarID string
	timeout    time.Duration
}

// NewGoogleClient authenticates with a service-account keyfile. The timeout
// bounds every remote call so a slow calendar can never stall a booking.
func NewGoogleClient(
	ctx context.Context,
	keyFile string,
	calendarID string,
	timeout time.Duration,
) (*GoogleClient, error) {

	svc, err := gcal.NewService(
		ctx,
		option.WithCredentialsFile(keyFile),
		option.WithScopes(gcal.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar: init service: %w", err)
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &GoogleClient{
		svc:        svc,
		calendarID: calendarID,
		timeout:    timeout,
	}, nil
}

func (c *GoogleClient) CreateEvent(ctx context.Context, ev Event) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	created, err := c.svc.Events.Insert(c.calendarID, &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: ev.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: ev.Timezone,
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar: insert event: %w", err)
	}

	return created.Id, nil
}

func (c *GoogleClient) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("calendar: delete event %s: %w", eventID, err)
	}
	return nil
}

var _ Client = (*GoogleClient)(nil)
