package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de servicio.
const (
	OrderStatusPending   = "Pendiente"
	OrderStatusCompleted = "Completado"
)

// Estados de timbrado fiscal de la orden.
const (
	FiscalStatusPending = "Pendiente"
	FiscalStatusStamped = "Timbrado"
)

// Order representa una orden de servicio generada a partir de una cotización.
// PaidAmount puede superar Total: no se limita el sobrepago.
type Order struct {
	ID            string
	QuoteID       string
	ClientID      string
	Total         decimal.Decimal
	PaidAmount    decimal.Decimal
	PaymentMethod string
	Status        string
	FiscalStatus  string
	FiscalData    *FiscalSnapshot
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsFullyPaid indica si lo abonado cubre el total.
func (o *Order) IsFullyPaid() bool {
	return o.PaidAmount.GreaterThanOrEqual(o.Total)
}
