package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is process configuration. The Gemini API key is intentionally absent:
// the client reads it from the environment on every call.
type Config struct {
	Port        string
	DatabaseURL string
	Debug       bool
	CORSOrigins string

	GeminiBaseURL       string
	GeminiModel         string
	GeminiFallbackModel string
	GeminiTimeout       time.Duration
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Debug:       getEnvBool("LOG_DEBUG", false),
		CORSOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),

		GeminiBaseURL:       getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.0-flash-lite"),
		GeminiFallbackModel: getEnv("GEMINI_FALLBACK_MODEL", "gemini-1.5-flash"),
		GeminiTimeout:       time.Duration(getEnvInt("GEMINI_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
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
