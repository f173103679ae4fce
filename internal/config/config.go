package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	ServerPort string
	LogLevel   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string

	// Google Calendar (service account).
	GoogleKeyFile    string
	GoogleCalendarID string

	// Twilio WhatsApp sender.
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string

	// Center-wide settings.
	Timezone             string
	BusinessHoursWeekday HoursRange
	BusinessHoursWeekend HoursRange

	ExternalCallTimeout time.Duration
}

// HoursRange is an opening window in "HH:MM" wall-clock strings, the same
// representation the worker schedules use.
type HoursRange struct {
	Open  string
	Close string
}

func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "citasya"),
		DBPassword: getEnv("DB_PASSWORD", "citasya"),
		DBName:     getEnv("DB_NAME", "citasya_db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		GoogleKeyFile:    getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleCalendarID: getEnv("GOOGLE_CALENDAR_ID", ""),

		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioWhatsAppFrom: getEnv("TWILIO_WHATSAPP_FROM", ""),

		Timezone:             getEnv("SPA_TIMEZONE", "America/Caracas"),
		BusinessHoursWeekday: parseHoursRange(getEnv("BUSINESS_HOURS_WEEKDAY", "09:00-19:00")),
		BusinessHoursWeekend: parseHoursRange(getEnv("BUSINESS_HOURS_WEEKEND", "09:00-14:00")),

		ExternalCallTimeout: 10 * time.Second,
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// BusinessHours returns the center's opening window for the given weekday.
func (c *Config) BusinessHours(weekday time.Weekday) HoursRange {
	if weekday == time.Saturday || weekday == time.Sunday {
		return c.BusinessHoursWeekend
	}
	return c.BusinessHoursWeekday
}

func (c *Config) CalendarEnabled() bool {
	return c.GoogleKeyFile != "" && c.GoogleCalendarID != ""
}

func (c *Config) MessagingEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppFrom != ""
}

func parseHoursRange(raw string) HoursRange {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return HoursRange{Open: "09:00", Close: "19:00"}
	}
	return HoursRange{
		Open:  strings.TrimSpace(parts[0]),
		Close: strings.TrimSpace(parts[1]),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
