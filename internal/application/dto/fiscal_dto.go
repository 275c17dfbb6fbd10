package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveXMLRequest body para POST /api/fiscal-inbox.
type ReceiveXMLRequest struct {
	XML    string `json:"xml"`
	XMLURL string `json:"xml_url"`
	PDFURL string `json:"pdf_url"`
}

// FiscalDocumentResponse entrada de la bandeja fiscal.
type FiscalDocumentResponse struct {
	ID           string          `json:"id"`
	UUID         string          `json:"uuid"`
	EmitterRFC   string          `json:"emitter_rfc"`
	EmitterName  string          `json:"emitter_name"`
	ReceiverRFC  string          `json:"receiver_rfc"`
	ReceiverName string          `json:"receiver_name"`
	Amount       decimal.Decimal `json:"amount"`
	XMLURL       string          `json:"xml_url,omitempty"`
	PDFURL       string          `json:"pdf_url,omitempty"`
	Status       string          `json:"status"`
	OrderID      *string         `json:"order_id"`
	ReceivedAt   time.Time       `json:"received_at"`
}

// FiscalInboxResponse lista paginada de la bandeja.
type FiscalInboxResponse struct {
	Items []FiscalDocumentResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
