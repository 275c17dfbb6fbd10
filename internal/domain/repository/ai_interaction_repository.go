package repository

import (
	"context"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

// AIInteractionRepository bitácora de consultas al asistente.
type AIInteractionRepository interface {
	Create(ctx context.Context, in *entity.AIInteraction) error
}
