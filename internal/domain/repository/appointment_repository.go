package repository

import (
	"context"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

// AppointmentRepository define el puerto de persistencia para citas.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
