package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the engine. Threshold and cap
// values are read once at startup; the engine has no mutable runtime
// configuration.
type AppConfig struct {
	DatabaseURL string

	HTTPListenAddr string
	EventAuthToken string

	PushGatewayURL    string
	PushGatewayAPIKey string
	PushRatePerSecond float64

	LogLevel    string
	Environment string

	SchedulerTimezone        string
	CronSpecAppointmentSweep string
	CronSpecDocumentSweep    string

	ReminderToleranceMinutes int
	DocumentHorizonDays      int
	ToxicityThreshold        float64
	CravingCrisisThreshold   int
	AdminFanoutLimit         int
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.EventAuthToken = os.Getenv("EVENT_AUTH_TOKEN")
	if cfg.EventAuthToken == "" {
		return nil, fmt.Errorf("EVENT_AUTH_TOKEN is not set")
	}

	cfg.PushGatewayURL = os.Getenv("PUSH_GATEWAY_URL")
	if cfg.PushGatewayURL == "" {
		return nil, fmt.Errorf("PUSH_GATEWAY_URL is not set")
	}
	cfg.PushGatewayAPIKey = os.Getenv("PUSH_GATEWAY_API_KEY")

	cfg.HTTPListenAddr = os.Getenv("HTTP_LISTEN_ADDR")
	if cfg.HTTPListenAddr == "" {
		cfg.HTTPListenAddr = ":8080"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.SchedulerTimezone = os.Getenv("SCHEDULER_TIMEZONE")
	if cfg.SchedulerTimezone == "" {
		cfg.SchedulerTimezone = "UTC"
	}

	cfg.CronSpecAppointmentSweep = os.Getenv("CRON_SPEC_APPOINTMENT_SWEEP")
	if cfg.CronSpecAppointmentSweep == "" {
		cfg.CronSpecAppointmentSweep = "*/15 * * * *" // Every 15 minutes
	}
	cfg.CronSpecDocumentSweep = os.Getenv("CRON_SPEC_DOCUMENT_SWEEP")
	if cfg.CronSpecDocumentSweep == "" {
		cfg.CronSpecDocumentSweep = "0 9 * * *" // Daily at 9 AM
	}

	cfg.PushRatePerSecond, err = floatEnv("PUSH_RATE_PER_SECOND", 20)
	if err != nil {
		return nil, err
	}
	cfg.ReminderToleranceMinutes, err = intEnv("REMINDER_TOLERANCE_MINUTES", 16)
	if err != nil {
		return nil, err
	}
	cfg.DocumentHorizonDays, err = intEnv("DOCUMENT_HORIZON_DAYS", 30)
	if err != nil {
		return nil, err
	}
	cfg.ToxicityThreshold, err = floatEnv("TOXICITY_THRESHOLD", 0.5)
	if err != nil {
		return nil, err
	}
	cfg.CravingCrisisThreshold, err = intEnv("CRAVING_CRISIS_THRESHOLD", 8)
	if err != nil {
		return nil, err
	}
	cfg.AdminFanoutLimit, err = intEnv("ADMIN_FANOUT_LIMIT", 10)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func intEnv(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

func floatEnv(name string, def float64) (float64, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}
