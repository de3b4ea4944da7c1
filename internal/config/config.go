package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
	Cache    CacheConfig
}

type AppConfig struct {
	Name               string
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string // empty disables event forwarding
	RedisURL           string // empty disables the published post cache
	EventsTopic        string
}

type DatabaseConfig struct {
	Driver     string // "sqlite" or "postgres"
	Connection string
}

type AuthConfig struct {
	JwtSecret string
	JwtExpiry time.Duration
}

type AIConfig struct {
	LLMProvider   string // "ollama", "huggingface", "groq" or "none"
	LLMModel      string
	OllamaBaseURL string
	LLMBaseURL    string
	LLMAPIKey     string
	Timeout       time.Duration
}

type CacheConfig struct {
	AIResultTTL      time.Duration
	PublishedPostTTL time.Duration
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	port := getEnv("APP_PORT", "8000")
	return &Config{
		App: AppConfig{
			Name:               getEnv("APP_NAME", "Smart Blog Editor"),
			Port:               port,
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:"+port),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			EventsTopic:        getEnv("EVENTS_TOPIC", "POST_CHANGED"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			Connection: getEnv("DB_CONNECTION_STRING", "blog.db"),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", "change-me-in-production"),
			JwtExpiry: time.Duration(getEnvAsInt("JWT_EXPIRE_MINUTES", 60)) * time.Minute,
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "none"),
			LLMModel:      getEnv("LLM_MODEL", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMBaseURL:    getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:     getEnv("LLM_API_KEY", ""),
			Timeout:       time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Cache: CacheConfig{
			AIResultTTL:      time.Duration(getEnvAsInt("AI_CACHE_TTL_SECONDS", 600)) * time.Second,
			PublishedPostTTL: time.Duration(getEnvAsInt("PUBLISHED_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
