package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/servihogar-api/internal/application/ports"
	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

const systemPrompt = `Eres el asistente interno de una empresa de servicios a domicilio (instalación y mantenimiento
de equipos del hogar). Responde en español, de forma breve y práctica, a técnicos y gerentes.`

// UseCase orquesta las consultas al asistente de IA.
// Aplica un timeout de 10 segundos en cada llamada al LLM para evitar
// que las latencias externas bloqueen los goroutines del servidor.
type UseCase struct {
	llm  ports.LLMService
	repo repository.AIInteractionRepository
	log  zerolog.Logger
}

// NewUseCase construye el caso de uso inyectando el puerto LLMService.
func NewUseCase(llm ports.LLMService, repo repository.AIInteractionRepository, log zerolog.Logger) *UseCase {
	return &UseCase{llm: llm, repo: repo, log: log}
}

// Ask envía la consulta al modelo y registra pregunta y respuesta en ai_interactions.
func (uc *UseCase) Ask(ctx context.Context, actor entity.Actor, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", domain.ErrInvalidInput
	}

	// Timeout de 10 s: las llamadas a LLMs pueden demorar varios segundos.
	llmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	reply, err := uc.llm.Reply(llmCtx, systemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("asistente IA: %w", err)
	}

	err = uc.repo.Create(ctx, &entity.AIInteraction{
		Actor:  actor.DisplayName(),
		Prompt: prompt,
		Reply:  reply,
	})
	if err != nil {
		// la respuesta ya se obtuvo; perder la bitácora no invalida la consulta
		uc.log.Error().Err(err).Str("actor", actor.DisplayName()).Msg("no se pudo registrar la interacción IA")
	}
	return reply, nil
}
