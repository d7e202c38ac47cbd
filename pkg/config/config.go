package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Email    EmailConfig
	Features FeatureConfig
}

type ServerConfig struct {
	Port            string
	CORSOrigins     string
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Driver string // memory | sqlite
	Seed   bool
}

type EmailConfig struct {
	Transport     string // auto | resend | ses | smtp | log
	From          string
	To            string
	Timeout       time.Duration
	RetrySchedule string
	MaxAttempts   int
	OutboxSize    int

	ResendAPIKey string
	SMTP         SMTPConfig
	SES          SESConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type SESConfig struct {
	Enabled         bool
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type FeatureConfig struct {
	AdminInquiries bool
	ContactCompat  bool
}

func Load() *Config {
	// .env is optional; the environment wins when both are set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] could not read .env: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3000"),
			CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "*"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", "memory")),
			Seed:   getEnvBool("SEED_PROPERTIES", true),
		},
		Email: EmailConfig{
			Transport:     strings.ToLower(getEnv("EMAIL_TRANSPORT", "auto")),
			From:          getEnv("EMAIL_FROM", getEnv("SMTP_FROM", "Property Masters <noreply@propertymasters.ca>")),
			To:            getEnv("TO_EMAIL", getEnv("SMTP_TO", "info@propertymasters.ca")),
			Timeout:       getEnvDuration("EMAIL_TIMEOUT", 5*time.Second),
			RetrySchedule: getEnv("EMAIL_RETRY_SCHEDULE", "@every 5m"),
			MaxAttempts:   getEnvInt("EMAIL_MAX_ATTEMPTS", 5),
			OutboxSize:    getEnvInt("EMAIL_OUTBOX_SIZE", 100),
			ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
			SMTP: SMTPConfig{
				Host:     getEnv("SMTP_HOST", ""),
				Port:     getEnvInt("SMTP_PORT", 587),
				Username: getEnv("SMTP_USER", ""),
				Password: getEnv("SMTP_PASS", ""),
			},
			SES: SESConfig{
				Enabled:         getEnvBool("SES_ENABLED", false),
				Region:          getEnv("AWS_REGION", "ca-central-1"),
				AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			},
		},
		Features: FeatureConfig{
			AdminInquiries: getEnvBool("FEATURE_ADMIN_INQUIRIES", false),
			ContactCompat:  getEnvBool("FEATURE_CONTACT_COMPAT", true),
		},
	}

	if cfg.Features.AdminInquiries {
		log.Println("[WARN] FEATURE_ADMIN_INQUIRIES is on: contact inquiries are readable without authentication")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[config] %s=%q is not an integer, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("[config] %s=%q is not a boolean, using %t", key, value, defaultValue)
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("[config] %s=%q is not a duration, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
