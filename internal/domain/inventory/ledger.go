package inventory

import "github.com/jhoicas/servihogar-api/internal/domain/entity"

// Adjustment calcula el movimiento que lleva el stock de current a target.
// ok es false cuando no hay diferencia y no se debe registrar nada.
//
//	diff > 0 -> IN |diff|
//	diff < 0 -> OUT |diff|
func Adjustment(current, target int) (movType string, qty int, ok bool) {
	diff := target - current
	switch {
	case diff > 0:
		return entity.MovementTypeIN, diff, true
	case diff < 0:
		return entity.MovementTypeOUT, -diff, true
	default:
		return "", 0, false
	}
}

// Balance suma con signo las cantidades del kardex (entradas +, salidas -).
func Balance(movements []*entity.InventoryMovement) int {
	total := 0
	for _, m := range movements {
		total += m.SignedQuantity()
	}
	return total
}

// Reconciles indica si el contador materializado coincide con el kardex.
func Reconciles(stock int, movements []*entity.InventoryMovement) bool {
	return Balance(movements) == stock
}

// IsLowStock aplica el umbral fijo de alerta usado al completar órdenes.
func IsLowStock(stock int) bool {
	return stock < entity.LowStockThreshold
}
