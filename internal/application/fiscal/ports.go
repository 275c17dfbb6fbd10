package fiscal

import (
	"context"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// DocumentParser convierte el XML recibido en una entrada de la bandeja.
type DocumentParser interface {
	Parse(raw []byte) (*entity.FiscalDocument, error)
}
