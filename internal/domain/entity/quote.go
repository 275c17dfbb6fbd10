package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteItem línea de una cotización.
type QuoteItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Quote cotización. Sus líneas son la fuente de verdad de lo que se descuenta al completar la orden.
type Quote struct {
	ID        string
	ClientID  string
	Items     []QuoteItem
	Total     decimal.Decimal
	CreatedAt time.Time
}
