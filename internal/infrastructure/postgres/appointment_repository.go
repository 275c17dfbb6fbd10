package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación de AppointmentRepository.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador.
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

// GetByID obtiene una cita por ID.
func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	var a entity.Appointment
	var notes *string
	err := r.q.QueryRow(ctx,
		`SELECT id, client_id, scheduled_at, status, notes, updated_at FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.ClientID, &a.ScheduledAt, &a.Status, &notes, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	a.Notes = derefString(notes)
	return &a, nil
}

// UpdateStatus cambia el estado de la cita.
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE appointments SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
