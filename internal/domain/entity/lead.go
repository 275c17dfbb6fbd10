package entity

import "time"

// Estados del embudo de prospectos.
const (
	LeadStatusNew       = "Nuevo"
	LeadStatusContacted = "Contactado"
	LeadStatusQuoted    = "Cotizado"
	LeadStatusWon       = "Ganado"
	LeadStatusLost      = "Perdido"
)

// Lead representa un prospecto comercial. Al convertirse queda en Ganado y nunca se revierte.
type Lead struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Source    string // web, whatsapp, referido...
	Status    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
