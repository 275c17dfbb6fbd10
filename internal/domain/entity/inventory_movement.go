package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Motivos estándar del kardex.
const (
	MovementReasonInitial    = "Inventario inicial"
	MovementReasonAdjustment = "Ajuste manual"
)

// InventoryMovement es una fila del kardex. Solo se inserta; nunca se actualiza ni elimina.
type InventoryMovement struct {
	ID        string
	ProductID string
	Actor     string // nombre de quien originó el movimiento
	Type      string
	Quantity  int // siempre positivo; el signo lo da Type
	Reason    string
	CreatedAt time.Time
}

// SignedQuantity devuelve la cantidad con signo (+ entrada, - salida).
func (m *InventoryMovement) SignedQuantity() int {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}
