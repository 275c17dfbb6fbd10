package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la bandeja fiscal.
const (
	FiscalDocStatusUnlinked = "Sin vincular"
	FiscalDocStatusLinked   = "Vinculado"
)

// FiscalDocument entrada de la bandeja fiscal (CFDI recibido por un canal externo).
type FiscalDocument struct {
	ID           string
	UUID         string // folio fiscal, único
	EmitterRFC   string
	EmitterName  string
	ReceiverRFC  string
	ReceiverName string
	Amount       decimal.Decimal
	XMLURL       string
	PDFURL       string
	Digest       string // sha256 de la forma canónica del XML
	Status       string
	OrderID      *string
	ReceivedAt   time.Time
	UpdatedAt    time.Time
}

// FiscalSnapshot copia del documento fiscal guardada en la orden (columna fiscal_data).
type FiscalSnapshot struct {
	UUID         string          `json:"uuid"`
	EmitterRFC   string          `json:"emitter_rfc"`
	EmitterName  string          `json:"emitter_name"`
	ReceiverRFC  string          `json:"receiver_rfc"`
	ReceiverName string          `json:"receiver_name"`
	Amount       decimal.Decimal `json:"amount"`
	XMLURL       string          `json:"xml_url"`
	PDFURL       string          `json:"pdf_url"`
	LinkedAt     time.Time       `json:"linked_at"`
}

// Snapshot construye la copia que se almacena en la orden.
func (d *FiscalDocument) Snapshot(at time.Time) *FiscalSnapshot {
	return &FiscalSnapshot{
		UUID:         d.UUID,
		EmitterRFC:   d.EmitterRFC,
		EmitterName:  d.EmitterName,
		ReceiverRFC:  d.ReceiverRFC,
		ReceiverName: d.ReceiverName,
		Amount:       d.Amount,
		XMLURL:       d.XMLURL,
		PDFURL:       d.PDFURL,
		LinkedAt:     at,
	}
}
