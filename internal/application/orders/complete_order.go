package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/inventory"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

// CompleteResult resultado del cierre de una orden.
type CompleteResult struct {
	Success  bool
	LowStock int // productos que quedaron bajo el umbral
}

// CompleteOrder descuenta del inventario las líneas de la cotización, registra las salidas
// en el kardex y marca la orden como Completado, todo en una sola transacción.
//
// No es idempotente: llamarla dos veces descuenta dos veces. Quien invoca debe evitarlo.
func (uc *UseCase) CompleteOrder(ctx context.Context, orderID string, actor entity.Actor) (*CompleteResult, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}

	var result CompleteResult
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		order, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		quote, err := repos.Quotes.GetByID(ctx, order.QuoteID)
		if err != nil {
			return err
		}
		if quote == nil {
			return domain.ErrNotFound
		}
		if len(quote.Items) == 0 {
			return domain.ErrInvalidInput
		}

		reason := fmt.Sprintf("Venta - Orden #%s", order.ID)
		for _, item := range quote.Items {
			low, err := uc.consumeItem(ctx, repos, item, reason, actor)
			if err != nil {
				return err
			}
			if low {
				result.LowStock++
			}
		}

		if err := repos.Orders.UpdateStatus(ctx, order.ID, entity.OrderStatusCompleted); err != nil {
			return fmt.Errorf("complete order: %w", err)
		}
		result.Success = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.LowStock > 0 {
		uc.invalidate(ctx)
	}
	uc.log.Info().Str("order_id", orderID).Str("actor", actor.DisplayName()).
		Int("low_stock", result.LowStock).Msg("orden completada")
	return &result, nil
}

// consumeItem descuenta una línea. Los servicios no llevan existencias y se omiten.
// La lectura con bloqueo ve lo escrito por líneas anteriores de la misma orden.
func (uc *UseCase) consumeItem(ctx context.Context, repos repository.Repos, item entity.QuoteItem, reason string, actor entity.Actor) (bool, error) {
	product, err := repos.Products.GetForUpdate(ctx, item.ProductID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, domain.ErrNotFound
	}
	if !product.IsPhysical() {
		return false, nil
	}

	newStock := product.Stock - item.Quantity
	if err := repos.Products.UpdateStock(ctx, product.ID, newStock); err != nil {
		return false, fmt.Errorf("update stock %s: %w", product.ID, err)
	}
	mov := &entity.InventoryMovement{
		ProductID: product.ID,
		Actor:     actor.DisplayName(),
		Type:      entity.MovementTypeOUT,
		Quantity:  item.Quantity,
		Reason:    reason,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return false, fmt.Errorf("register movement %s: %w", product.ID, err)
	}

	if !inventory.IsLowStock(newStock) {
		return false, nil
	}
	msg := fmt.Sprintf("El producto %s quedó con %d unidades", product.Name, newStock)
	if err := repos.Notifications.Append(ctx, "Stock bajo", msg, entity.NotificationTypeWarning); err != nil {
		return false, fmt.Errorf("low stock notification: %w", err)
	}
	uc.log.Warn().Str("product_id", product.ID).Int("stock", newStock).Msg("stock bajo")
	return true, nil
}
