package config

import (
	"os"
	"time"
)

// Config captures everything the composition root needs to wire the service.
type Config struct {
	Addr        string
	DatabaseURL string
	RedisURL    string

	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration

	// Resend email delivery. Empty API key means the mailer is not configured
	// and warning emails fail fast with a configuration error.
	ResendAPIKey string
	SenderEmail  string

	// Seed identity for the primary super admin, ensured at startup.
	PrimaryAdminEmail    string
	PrimaryAdminPassword string
	PrimaryAdminName     string

	OrgName string
}

// FromEnv builds a Config from environment variables so main stays lean.
// Defaults target local development; production overrides everything secret.
func FromEnv() Config {
	return Config{
		Addr:        getenv("BFCMS_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSigningKey: getenv("JWT_SIGNING_KEY", "bfcms-dev-key-change-in-production"),
		JWTIssuer:     getenv("JWT_ISSUER", "bfcms"),
		TokenTTL:      getenvDuration("TOKEN_TTL", 24*time.Hour),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		SenderEmail:  getenv("SENDER_EMAIL", "onboarding@resend.dev"),

		PrimaryAdminEmail:    getenv("PRIMARY_ADMIN_EMAIL", "admin@blossomfamilychoir.org"),
		PrimaryAdminPassword: getenv("PRIMARY_ADMIN_PASSWORD", "admin123"),
		PrimaryAdminName:     getenv("PRIMARY_ADMIN_NAME", "Primary Administrator"),

		OrgName: getenv("ORG_NAME", "Thee Blossom Family Choir"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
