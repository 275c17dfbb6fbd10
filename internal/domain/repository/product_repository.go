package repository

import (
	"context"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update persiste todos los campos, incluido Stock.
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, stock int) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
