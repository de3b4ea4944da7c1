package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"smart-blog-be/pkg/llm"
	"smart-blog-be/pkg/llm/ollama"
)

func ollamaFromEnv(t *testing.T) *ollama.OllamaProvider {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gemma:2b"
	}
	return ollama.NewOllamaProvider(baseURL, model, &http.Client{Timeout: 120 * time.Second})
}

func TestOllamaGenerate(t *testing.T) {
	provider := ollamaFromEnv(t)
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	response, err := provider.Generate(ctx, "Say 'Ollama works!' in one sentence.", llm.WithMaxTokens(64))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if response == "" {
		t.Error("Response should not be empty")
	}
	t.Logf("Response: %s", response)
}

func TestOllamaMultiTurnConversation(t *testing.T) {
	provider := ollamaFromEnv(t)
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	response, err := provider.Chat(ctx, []llm.Message{
		{Role: "user", Content: "My name is John"},
		{Role: "assistant", Content: "Nice to meet you, John!"},
		{Role: "user", Content: "What is my name?"},
	})
	if err != nil {
		t.Fatalf("Multi-turn conversation failed: %v", err)
	}
	t.Logf("Response: %s", response)
}
