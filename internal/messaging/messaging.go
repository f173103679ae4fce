// Package messaging sends WhatsApp notifications to clients through the
// Twilio REST API. Like the calendar mirror, sends are best-effort.
package messaging

import "context"

type Sender interface {
	SendWhatsApp(ctx context.Context, to string, body string) error
}

// Noop stands in when no Twilio credentials are configured.
type Noop struct{}

func (Noop) SendWhatsApp(ctx context.Context, to string, body string) error { return nil }
