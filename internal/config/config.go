package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Invites
	InviteExpiry time.Duration

	// OpenAI
	OpenAIAPIKey     string
	OpenAIChatModel  string
	OpenAIEmbedModel string
	AITimeout        time.Duration

	// Retrieval
	RetrievalTopK      int
	RetrievalThreshold float64

	// Resend (transactional email)
	ResendAPIKey string
	EmailFrom    string

	// Public app URL used to build invite/reset links
	AppURL string

	// Server
	Port        string
	CORSOrigins string

	// Log retention
	LogRetentionDays int
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "fleetwise_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),

		InviteExpiry: parseDuration(getEnv("INVITE_EXPIRY", "48h"), 48*time.Hour),

		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIChatModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIEmbedModel: getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
		AITimeout:        parseDuration(getEnv("AI_TIMEOUT", "60s"), 60*time.Second),

		RetrievalTopK:      parseInt(getEnv("RETRIEVAL_TOP_K", "6"), 6),
		RetrievalThreshold: parseFloat(getEnv("RETRIEVAL_THRESHOLD", "0.3"), 0.3),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "FleetWise <noreply@fleetwise.app>"),

		AppURL: getEnv("APP_URL", "http://localhost:5173"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}
