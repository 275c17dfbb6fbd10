package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

var _ repository.AIInteractionRepository = (*AIInteractionRepo)(nil)

// AIInteractionRepo bitácora de consultas al asistente (tabla ai_interactions).
type AIInteractionRepo struct {
	q Querier
}

// NewAIInteractionRepository construye el adaptador.
func NewAIInteractionRepository(q Querier) *AIInteractionRepo {
	return &AIInteractionRepo{q: q}
}

// Create registra la consulta y la respuesta.
func (r *AIInteractionRepo) Create(ctx context.Context, in *entity.AIInteraction) error {
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO ai_interactions (id, actor, prompt, reply, created_at) VALUES ($1, $2, $3, $4, $5)`,
		in.ID, in.Actor, in.Prompt, in.Reply, in.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ai interaction: %w", err)
	}
	return nil
}
