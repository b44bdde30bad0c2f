package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"studyhub/internal/llm"
)

const (
	// La cuota del proveedor se reinicia en una ventana de 20-30s: con 3
	// intentos y esperas de 10s y 20s cubrimos esa ventana sin desperdiciar
	// intentos ni alargar de mas la latencia.
	maxGenerationAttempts = 3
	retryBackoffUnit      = 10 * time.Second

	emptyReplyText = "I apologize, but I couldn't generate a response to that. Please try rephrasing your question."
)

// GenerationService envuelve al cliente LLM con reintentos ante rate limiting
// y degrada toda falla a texto: el chat nunca se cae por el proveedor.
type GenerationService struct {
	logger    *zap.Logger
	llmClient llm.LLMClient
	apiKey    string

	// sleep se inyecta en tests para no esperar de verdad.
	sleep func(time.Duration)
}

func NewGenerationService(logger *zap.Logger, llmClient llm.LLMClient, apiKey string) *GenerationService {
	return &GenerationService{
		logger:    logger,
		llmClient: llmClient,
		apiKey:    apiKey,
		sleep:     time.Sleep,
	}
}

// Generate devuelve siempre texto, nunca error. Sin credencial configurada
// responde un eco determinista para desarrollo local y tests.
func (s *GenerationService) Generate(ctx context.Context, turns []llm.Turn) string {
	if s.apiKey == "" {
		return fmt.Sprintf("Mock response: I received your message '%s'. (Set LLM_API_KEY to get real responses)", lastUserText(turns))
	}

	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		reply, err := s.llmClient.Generate(ctx, turns)
		if err == nil {
			return reply
		}

		if errors.Is(err, llm.ErrEmptyResponse) {
			return emptyReplyText
		}

		if errors.Is(err, llm.ErrRateLimited) && attempt < maxGenerationAttempts {
			wait := time.Duration(attempt) * retryBackoffUnit
			s.logger.Warn("llm rate limited, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
			)
			s.sleep(wait)
			continue
		}

		s.logger.Error("llm generate failed", zap.Int("attempt", attempt), zap.Error(err))
		return fmt.Sprintf("Error communicating with Gemini: %v", err)
	}

	// Inalcanzable: el loop siempre retorna.
	return emptyReplyText
}

func lastUserText(turns []llm.Turn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == llm.WireRoleUser {
			return turns[i].Text
		}
	}
	return ""
}
