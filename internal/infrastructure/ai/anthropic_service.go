package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/servihogar-api/internal/application/ports"
	"github.com/jhoicas/servihogar-api/internal/domain"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// AnthropicService adaptador que implementa LLMService sobre la Messages API de Anthropic.
type AnthropicService struct {
	apiKey string
	model  string
	client *resty.Client
}

// NewAnthropicService construye el adaptador. baseURL vacío usa la API pública.
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model, baseURL string) *AnthropicService {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 10 s.
		SetTimeout(25*time.Second).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("content-type", "application/json")
	return &AnthropicService{apiKey: apiKey, model: model, client: client}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Reply envía el prompt a Claude y concatena los bloques de texto de la respuesta.
// Cualquier falla del proveedor se reporta como ErrUpstream.
func (s *AnthropicService) Reply(ctx context.Context, system, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: ANTHROPIC_API_KEY no configurado", domain.ErrUpstream)
	}

	var out anthropicResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", s.apiKey).
		SetBody(anthropicRequest{
			Model:     s.model,
			MaxTokens: 1024,
			System:    system,
			Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&out).
		SetError(&out).
		Post("/v1/messages")
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrUpstream, ctx.Err())
		}
		return "", fmt.Errorf("%w: llamada HTTP fallida: %v", domain.ErrUpstream, err)
	}
	if resp.IsError() {
		if out.Error != nil {
			return "", fmt.Errorf("%w: Anthropic error (%s): %s", domain.ErrUpstream, out.Error.Type, out.Error.Message)
		}
		return "", fmt.Errorf("%w: Anthropic HTTP %d", domain.ErrUpstream, resp.StatusCode())
	}

	var sb strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", fmt.Errorf("%w: respuesta vacía", domain.ErrUpstream)
	}
	return reply, nil
}
