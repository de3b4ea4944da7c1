package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"smart-blog-be/internal/dto"
	"smart-blog-be/internal/pkg/logger"
	"smart-blog-be/internal/repository/memory"
	"smart-blog-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	calls   int
	prompts []string
	opts    llm.Options
	reply   string
	err     error
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.Generate(ctx, history[len(history)-1].Content, options...)
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.calls++
	p.prompts = append(p.prompts, prompt)
	p.opts = llm.Apply(llm.Options{}, options...)
	return p.reply, p.err
}

func TestFallbackResponses(t *testing.T) {
	svc := NewAIService(nil, nil, logger.NewNopLogger())
	ctx := context.Background()

	long := strings.Repeat("word ", 40)
	tests := []struct {
		action string
		text   string
		want   string
	}{
		{ActionSummarize, "short text here", "Summary (offline): short text here"},
		{ActionSummarize, long, "Summary (offline): " + strings.TrimSpace(strings.Repeat("word ", 30)) + "..."},
		{ActionFixGrammar, "teh cat", "teh cat"},
		{ActionExpand, "idea", "idea\n\n[AI expansion unavailable: configure LLM_PROVIDER in .env]"},
		{ActionTitle, "anything", "1. [AI titles unavailable: configure LLM_PROVIDER in .env]"},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			res, err := svc.Generate(ctx, &dto.GenerateRequest{Text: tt.text, Action: tt.action})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Result)
			assert.Equal(t, tt.action, res.Action)
		})
	}
}

func TestGenerateRejectsUnknownAction(t *testing.T) {
	svc := NewAIService(nil, nil, logger.NewNopLogger())
	_, err := svc.Generate(context.Background(), &dto.GenerateRequest{Text: "x", Action: "translate"})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestGenerateUsesProviderAndCache(t *testing.T) {
	provider := &stubProvider{reply: "A short summary."}
	generations := memory.NewGenerationCache(time.Minute)
	svc := NewAIService(provider, generations, logger.NewNopLogger())
	ctx := context.Background()

	req := &dto.GenerateRequest{Text: "Long post body", Action: ActionSummarize}
	res, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", res.Result)
	require.Len(t, provider.prompts, 1)
	assert.True(t, strings.HasPrefix(provider.prompts[0], actionPrompts[ActionSummarize]))
	assert.True(t, strings.HasSuffix(provider.prompts[0], "Long post body"))
	assert.Equal(t, 0.7, provider.opts.Temperature)
	assert.Equal(t, 1024, provider.opts.MaxTokens)

	again, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, res.Result, again.Result)
	assert.Equal(t, 1, provider.calls)

	// Same text, different action, is a separate entry.
	_, err = svc.Generate(ctx, &dto.GenerateRequest{Text: "Long post body", Action: ActionTitle})
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestGenerateFallsBackOnProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream 503")}
	generations := memory.NewGenerationCache(time.Minute)
	svc := NewAIService(provider, generations, logger.NewNopLogger())

	res, err := svc.Generate(context.Background(), &dto.GenerateRequest{Text: "teh text", Action: ActionFixGrammar})
	require.NoError(t, err)
	assert.Equal(t, "teh text", res.Result)
	assert.Equal(t, 0, generations.ItemCount(), "fallbacks are not cached")
}
