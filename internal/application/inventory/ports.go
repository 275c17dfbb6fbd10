package inventory

import (
	"context"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el contador de stock y el kardex se muevan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// KardexRenderer genera la representación imprimible del kardex de un producto.
type KardexRenderer interface {
	RenderKardex(product *entity.Product, movements []*entity.InventoryMovement) ([]byte, error)
}
