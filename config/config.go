package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every external setting the server needs. It is built once
// in main and threaded through constructors; nothing reads the environment
// after startup.
type Config struct {
	Port        string
	Environment string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret   string
	TokenExpiry time.Duration

	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration

	GoogleClientID string

	SMTPHost     string
	SMTPPort     string
	SMTPEmail    string
	SMTPPassword string

	SupabaseURL string
	SupabaseKey string

	AllowedOrigins []string
}

func Load() *Config {
	expireMinutes := 30
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			expireMinutes = n
		}
	}

	origins := []string{"http://localhost:3000"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "smartstudy"),

		JWTSecret:   getEnv("JWT_SECRET", "change-me-in-production"),
		TokenExpiry: time.Duration(expireMinutes) * time.Minute,

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AITimeout:    30 * time.Second,

		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPEmail:    os.Getenv("SMTP_EMAIL"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		SupabaseURL: os.Getenv("SUPABASE_URL"),
		SupabaseKey: os.Getenv("SUPABASE_KEY"),

		AllowedOrigins: origins,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
