package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "America/Caracas", cfg.Timezone)
	assert.Equal(t, HoursRange{Open: "09:00", Close: "19:00"}, cfg.BusinessHoursWeekday)
	assert.Equal(t, HoursRange{Open: "09:00", Close: "14:00"}, cfg.BusinessHoursWeekend)
	assert.Equal(t, 10*time.Second, cfg.ExternalCallTimeout)
	assert.False(t, cfg.CalendarEnabled())
	assert.False(t, cfg.MessagingEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("SPA_TIMEZONE", "America/Bogota")
	t.Setenv("BUSINESS_HOURS_WEEKDAY", "08:00-20:00")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "/etc/citasya/sa.json")
	t.Setenv("GOOGLE_CALENDAR_ID", "spa@group.calendar.google.com")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.Addr())
	assert.Equal(t, "America/Bogota", cfg.Timezone)
	assert.Equal(t, HoursRange{Open: "08:00", Close: "20:00"}, cfg.BusinessHoursWeekday)
	assert.True(t, cfg.CalendarEnabled())
}

func TestDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "spa")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "spa_db")

	cfg := Load()

	assert.Equal(t,
		"host=db.internal port=5433 user=spa password=secret dbname=spa_db sslmode=disable",
		cfg.DSN(),
	)
}

func TestBusinessHours_PicksWeekendWindow(t *testing.T) {
	cfg := Load()

	assert.Equal(t, cfg.BusinessHoursWeekday, cfg.BusinessHours(time.Monday))
	assert.Equal(t, cfg.BusinessHoursWeekday, cfg.BusinessHours(time.Friday))
	assert.Equal(t, cfg.BusinessHoursWeekend, cfg.BusinessHours(time.Saturday))
	assert.Equal(t, cfg.BusinessHoursWeekend, cfg.BusinessHours(time.Sunday))
}

func TestParseHoursRange_Malformed(t *testing.T) {
	t.Setenv("BUSINESS_HOURS_WEEKDAY", "always open")

	cfg := Load()

	// a broken value falls back to the stock window instead of breaking boot
	assert.Equal(t, HoursRange{Open: "09:00", Close: "19:00"}, cfg.BusinessHoursWeekday)
}

func TestMessagingEnabled(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "tok")

	cfg := Load()
	assert.False(t, cfg.MessagingEnabled(), "the sender number is still missing")

	t.Setenv("TWILIO_WHATSAPP_FROM", "+14155238886")
	cfg = Load()
	assert.True(t, cfg.MessagingEnabled())
}
