package dto

import "time"

// MovementResponse fila del kardex.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Actor     string    `json:"actor"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementListResponse kardex paginado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ReconciliationResponse compara el stock materializado con la suma del kardex.
type ReconciliationResponse struct {
	ProductID     string `json:"product_id"`
	Stock         int    `json:"stock"`
	LedgerBalance int    `json:"ledger_balance"`
	Balanced      bool   `json:"balanced"`
}
