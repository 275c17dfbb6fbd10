package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto. Solo los bienes físicos participan en el kardex.
const (
	ProductTypeGood    = "producto"
	ProductTypeService = "servicio"
)

// LowStockThreshold umbral fijo de alerta al completar órdenes.
// Es independiente de Product.MinStock.
const LowStockThreshold = 5

// Product representa un producto o servicio del catálogo.
// Stock es un contador materializado que se mueve junto con inventory_movements.
type Product struct {
	ID        string
	SKU       string
	Name      string
	Type      string
	Price     decimal.Decimal
	Stock     int // no negativo por convención, no se valida
	MinStock  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPhysical indica si el producto lleva control de existencias.
func (p *Product) IsPhysical() bool {
	return p.Type == ProductTypeGood
}
