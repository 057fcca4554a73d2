package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	RedisAddr     string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// Admin API gate. An empty token disables admin routes unless
	// AdminAllowInsecure is set explicitly.
	AdminAPIToken      string
	AdminAllowInsecure bool

	// Object storage for CV PDFs (S3-compatible).
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3UseSSL        bool
	S3PublicBaseURL string

	// Outbound email.
	ResendAPIKey string
	MailFrom     string

	// Base URL of the frontend, used to build auth action links.
	AppBaseURL string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "bolsa"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),

		AdminAPIToken:      os.Getenv("ADMIN_API_TOKEN"),
		AdminAllowInsecure: getEnvBool("ADMIN_ALLOW_INSECURE", false),

		S3Endpoint:      getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3Bucket:        getEnv("S3_BUCKET", "cvs"),
		S3UseSSL:        getEnvBool("S3_USE_SSL", false),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@bolsa.local"),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:5173"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
