package repository

import (
	"context"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

// InventoryMovementRepository puerto del kardex. Solo inserciones y lecturas.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	// AllByProduct devuelve el historial completo, en orden cronológico (conciliación).
	AllByProduct(ctx context.Context, productID string) ([]*entity.InventoryMovement, error)
}
