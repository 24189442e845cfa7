package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects every environment-driven setting at startup.
type Config struct {
	Port  string
	DBURL string

	JWTSecret string

	NoShowGrace   time.Duration
	SweepSchedule string
	SweepToken    string

	Twilio TwilioConfig

	AllowedOrigins []string
}

// TwilioConfig holds notification dispatcher credentials. All fields may be
// empty; dispatch then degrades to log-only.
type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	FromNumber     string
	WhatsAppNumber string
}

func Load() *Config {
	graceMinutes := 15
	if env := os.Getenv("NO_SHOW_GRACE_MINUTES"); env != "" {
		if m, err := strconv.Atoi(env); err == nil && m > 0 {
			graceMinutes = m
		}
	}

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("ALLOWED_ORIGIN"); env != "" {
		origins = append(origins, env)
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBURL:         os.Getenv("DB_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		NoShowGrace:   time.Duration(graceMinutes) * time.Minute,
		SweepSchedule: getEnv("SWEEP_SCHEDULE", "*/5 * * * *"),
		SweepToken:    os.Getenv("SWEEP_TOKEN"),
		Twilio: TwilioConfig{
			AccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber:     os.Getenv("TWILIO_PHONE_NUMBER"),
			WhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		},
		AllowedOrigins: origins,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
