package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes de servicio.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	UpdatePayment(ctx context.Context, id string, paidAmount decimal.Decimal, method, status string) error
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateFiscal(ctx context.Context, id string, snapshot *entity.FiscalSnapshot, fiscalStatus string) error
}
