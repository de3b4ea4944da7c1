package factory

import (
	"fmt"
	"time"

	"smart-blog-be/pkg/llm"
	"smart-blog-be/pkg/llm/ollama"
	"smart-blog-be/pkg/llm/openai"

	"go.uber.org/zap"
)

type Config struct {
	Provider string // ollama | huggingface | groq | none
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	Retries  int
	Logger   *zap.Logger
}

const defaultGroqModel = "llama-3.3-70b-versatile"

// NewLLMProvider returns nil, nil when no provider is configured; callers
// fall back to offline responses.
func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	client := llm.NewHTTPClient(cfg.Timeout, cfg.Retries, cfg.Logger)

	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model, client), nil
	case "huggingface":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = openai.HuggingFaceBaseURL
		}
		return openai.NewProvider("huggingface", cfg.APIKey, baseURL, cfg.Model, client), nil
	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("groq provider requires LLM_API_KEY")
		}
		baseURL, model := cfg.BaseURL, cfg.Model
		if baseURL == "" {
			baseURL = openai.GroqBaseURL
		}
		if model == "" {
			model = defaultGroqModel
		}
		return openai.NewProvider("groq", cfg.APIKey, baseURL, model, client), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
