package repository

import (
	"context"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

// QuoteRepository lectura de cotizaciones (de solo lectura para los flujos de órdenes).
type QuoteRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
}
