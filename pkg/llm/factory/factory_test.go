package factory

import (
	"testing"

	"smart-blog-be/pkg/llm/ollama"
	"smart-blog-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Config{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewLLMProvider(Config{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	require.IsType(t, &ollama.OllamaProvider{}, p)
	assert.Equal(t, ollama.DefaultBaseURL, p.(*ollama.OllamaProvider).BaseURL)

	p, err = NewLLMProvider(Config{Provider: "groq", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &openai.Provider{}, p)

	p, err = NewLLMProvider(Config{Provider: "huggingface", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &openai.Provider{}, p)
}

func TestNewLLMProviderErrors(t *testing.T) {
	_, err := NewLLMProvider(Config{Provider: "groq"})
	assert.Error(t, err)

	_, err = NewLLMProvider(Config{Provider: "gemini"})
	assert.Error(t, err)
}
