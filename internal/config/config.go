package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Addr          string
	DatabaseURL   string
	SessionSecret string
	PublicURL     string
	LogPretty     bool

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// LoadConfig loads configuration from a .env file (if present) and
// environment variables, falling back to defaults.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:          getEnv("ADDR", ":5000"),
		DatabaseURL:   getEnv("DATABASE_URL", "file:instance/wedding_rsvp.db"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret-key"),
		PublicURL:     getEnv("PUBLIC_URL", "http://localhost:5000"),
		LogPretty:     getEnv("LOG_PRETTY", "") != "",

		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
