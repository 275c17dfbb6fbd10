package entity

import "time"

// Estados de la cita de servicio.
const (
	AppointmentStatusScheduled = "Programada"
	AppointmentStatusConfirmed = "Confirmada"
	AppointmentStatusCompleted = "Completada"
	AppointmentStatusCancelled = "Cancelada"
)

// ValidAppointmentStatus indica si s es un estado de cita conocido.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment cita agendada en el domicilio del cliente.
type Appointment struct {
	ID          string
	ClientID    string
	ScheduledAt time.Time
	Status      string
	Notes       string
	UpdatedAt   time.Time
}
