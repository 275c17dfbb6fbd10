package orders

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/servihogar-api/internal/application/ports"
	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

// UseCase flujos transaccionales de la orden de servicio: abonos y cierre.
type UseCase struct {
	tx    TxRunner
	cache ports.NotificationCache
	log   zerolog.Logger
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(tx TxRunner, cache ports.NotificationCache, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, cache: cache, log: log}
}

// PaymentResult resultado de aplicar un abono.
type PaymentResult struct {
	NewPaidAmount decimal.Decimal
	Status        string
}

// ApplyPayment suma amount a lo abonado y deja la orden en Completado si cubre el total.
// El sobrepago no se limita. No toca inventario.
func (uc *UseCase) ApplyPayment(ctx context.Context, orderID string, amount decimal.Decimal, method string) (*PaymentResult, error) {
	if orderID == "" || !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var result PaymentResult
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		order, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		order.PaidAmount = order.PaidAmount.Add(amount)
		order.Status = entity.OrderStatusPending
		if order.IsFullyPaid() {
			order.Status = entity.OrderStatusCompleted
		}
		if err := repos.Orders.UpdatePayment(ctx, order.ID, order.PaidAmount, method, order.Status); err != nil {
			return fmt.Errorf("apply payment: %w", err)
		}
		result = PaymentResult{NewPaidAmount: order.PaidAmount, Status: order.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", orderID).Str("amount", amount.String()).
		Str("paid", result.NewPaidAmount.String()).Str("status", result.Status).Msg("abono aplicado")
	return &result, nil
}

// invalidate refresca la caché de notificaciones. Sus fallas solo se registran.
func (uc *UseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de notificaciones")
	}
}
