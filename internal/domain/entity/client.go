package entity

import "time"

// Estados y tipos de cliente.
const (
	ClientStatusActive   = "Activo"
	ClientStatusInactive = "Inactivo"

	ClientTypeResidential = "Residencial" // categoría por defecto al convertir un prospecto
	ClientTypeBusiness    = "Empresarial"
)

// Client representa un cliente de servicios a domicilio.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Status    string
	Type      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
