package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries every environment-driven setting the app reads.
// Values come from the process environment (a .env file is loaded in main).
type Config struct {
	Port        string
	PostgresURL string
	JWTSecret   string

	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string

	UploadDir   string
	MaxUploadMB int64

	PlanTextCap      int
	DiagnosisTextCap int

	CORSOrigins []string
}

func Load() *Config {
	return &Config{
		Port:         getEnvWithDefault("PORT", "5000"),
		PostgresURL:  os.Getenv("POSTGRES_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvWithDefault("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		UploadDir:    getEnvWithDefault("UPLOAD_DIR", "uploads"),
		// Observed deployments ran with 5MB and 50MB ceilings, so this is
		// configuration rather than a constant.
		MaxUploadMB:      getEnvInt64("MAX_UPLOAD_MB", 5),
		PlanTextCap:      int(getEnvInt64("PLAN_TEXT_CAP", 10000)),
		DiagnosisTextCap: int(getEnvInt64("DIAGNOSIS_TEXT_CAP", 15000)),
		CORSOrigins:      splitOrigins(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),
	}
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
