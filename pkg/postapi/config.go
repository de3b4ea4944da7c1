package postapi

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAutosaveDelay = 1500 * time.Millisecond

type Config struct {
	BaseURL       string
	Token         string
	AutosaveDelay time.Duration
}

// ConfigFromEnv loads .env if present, then BLOG_API_URL, BLOG_API_TOKEN and
// AUTOSAVE_DELAY_MS.
func ConfigFromEnv() Config {
	_ = godotenv.Load()

	return Config{
		BaseURL:       getEnv("BLOG_API_URL", "http://localhost:8000"),
		Token:         getEnv("BLOG_API_TOKEN", ""),
		AutosaveDelay: time.Duration(getEnvAsInt("AUTOSAVE_DELAY_MS", int(DefaultAutosaveDelay/time.Millisecond))) * time.Millisecond,
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}
