package dto

import "github.com/shopspring/decimal"

// ApplyPaymentRequest body para POST /api/orders/:id/payments.
type ApplyPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
}

// ApplyPaymentResponse resultado del abono.
type ApplyPaymentResponse struct {
	NewPaidAmount decimal.Decimal `json:"new_paid_amount"`
	Status        string          `json:"status"`
}

// SuccessResponse respuesta de los flujos sin payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// LinkFiscalRequest body para POST /api/orders/:id/fiscal-link.
type LinkFiscalRequest struct {
	UUID string `json:"uuid"`
}
