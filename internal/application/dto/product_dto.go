package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock es el inventario inicial.
type CreateProductRequest struct {
	SKU      string          `json:"sku" validate:"max=100"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Type     string          `json:"type" validate:"required,oneof=producto servicio"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock" validate:"min=0"`
	MinStock int             `json:"min_stock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Si Stock viene informado, la diferencia se registra en el kardex como ajuste manual.
type UpdateProductRequest struct {
	SKU      *string          `json:"sku"`
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *int             `json:"stock"`
	MinStock *int             `json:"min_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"min_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
