package ports

import "context"

// LLMService define el puerto de salida para el asistente de inteligencia artificial.
// Cualquier adaptador (Anthropic, mock) debe implementar esta interfaz; la aplicación
// solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// Reply envía el prompt al modelo y devuelve el texto de la respuesta.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	Reply(ctx context.Context, system, prompt string) (string, error)
}
