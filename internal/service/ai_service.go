package service

import (
	"context"
	"fmt"
	"strings"

	"smart-blog-be/internal/dto"
	"smart-blog-be/internal/metrics"
	"smart-blog-be/internal/pkg/logger"
	"smart-blog-be/internal/repository/memory"
	"smart-blog-be/pkg/llm"
)

const (
	ActionSummarize  = "summarize"
	ActionFixGrammar = "fix_grammar"
	ActionExpand     = "expand"
	ActionTitle      = "title"
)

const summaryWordLimit = 30

var actionPrompts = map[string]string{
	ActionSummarize: "You are an expert blog editor. Summarize the following blog post content " +
		"into 2-3 concise sentences that capture the key points:\n\n",
	ActionFixGrammar: "You are an expert editor. Fix the grammar, spelling, and punctuation in the " +
		"following text. Return ONLY the corrected text, nothing else:\n\n",
	ActionExpand: "You are an expert blog writer. Expand on the following text, adding more detail, " +
		"examples, and depth. Keep the same tone and style:\n\n",
	ActionTitle: "You are an expert blog editor. Suggest 3 compelling blog post titles for the " +
		"following content. Return them as a numbered list:\n\n",
}

type IAIService interface {
	Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
}

type aiService struct {
	provider llm.LLMProvider
	cache    *memory.GenerationCache
	logger   logger.ILogger
}

// NewAIService builds the assist service. A nil provider serves the offline
// fallbacks only; a nil cache disables result caching.
func NewAIService(provider llm.LLMProvider, cache *memory.GenerationCache, log logger.ILogger) IAIService {
	return &aiService{
		provider: provider,
		cache:    cache,
		logger:   log,
	}
}

func (s *aiService) Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	prompt, ok := actionPrompts[req.Action]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAction, req.Action)
	}

	if s.cache != nil {
		if result, found := s.cache.Get(req.Action, req.Text); found {
			metrics.AIGenerations.WithLabelValues(req.Action, "cache").Inc()
			return &dto.GenerateResponse{Result: result, Action: req.Action}, nil
		}
	}

	if s.provider == nil {
		metrics.AIGenerations.WithLabelValues(req.Action, "fallback").Inc()
		return &dto.GenerateResponse{Result: fallbackResponse(req.Text, req.Action), Action: req.Action}, nil
	}

	result, err := s.provider.Generate(ctx, prompt+req.Text,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(1024),
	)
	if err != nil {
		s.logger.Error("AI", "LLM generation failed, using fallback", map[string]interface{}{
			"action": req.Action,
			"error":  err.Error(),
		})
		metrics.AIGenerations.WithLabelValues(req.Action, "fallback").Inc()
		return &dto.GenerateResponse{Result: fallbackResponse(req.Text, req.Action), Action: req.Action}, nil
	}

	metrics.AIGenerations.WithLabelValues(req.Action, "llm").Inc()
	if s.cache != nil {
		s.cache.Save(req.Action, req.Text, result)
	}
	return &dto.GenerateResponse{Result: result, Action: req.Action}, nil
}

// fallbackResponse is served when no provider is configured or the call
// fails. Fallbacks are never cached.
func fallbackResponse(text, action string) string {
	switch action {
	case ActionSummarize:
		words := strings.Fields(text)
		suffix := ""
		if len(words) > summaryWordLimit {
			words = words[:summaryWordLimit]
			suffix = "..."
		}
		return "Summary (offline): " + strings.Join(words, " ") + suffix
	case ActionFixGrammar:
		return text
	case ActionExpand:
		return text + "\n\n[AI expansion unavailable: configure LLM_PROVIDER in .env]"
	case ActionTitle:
		return "1. [AI titles unavailable: configure LLM_PROVIDER in .env]"
	default:
		return text
	}
}
