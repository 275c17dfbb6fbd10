package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/servihogar-api/internal/application/ports"
	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

// UseCase cambios de estado de citas con aviso al cliente.
type UseCase struct {
	appointments repository.AppointmentRepository
	clients      repository.ClientRepository
	messenger    ports.Messenger
	log          zerolog.Logger
}

// NewUseCase construye el caso de uso. messenger puede ser nil (sin avisos).
func NewUseCase(appointments repository.AppointmentRepository, clients repository.ClientRepository, messenger ports.Messenger, log zerolog.Logger) *UseCase {
	return &UseCase{appointments: appointments, clients: clients, messenger: messenger, log: log}
}

// UpdateStatus persiste el nuevo estado y después avisa al cliente por WhatsApp.
// Una falla del aviso se registra y no revierte ni falla el cambio de estado.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) (*entity.Appointment, error) {
	if id == "" || !entity.ValidAppointmentStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	appt, err := uc.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.appointments.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	appt.Status = status
	appt.UpdatedAt = time.Now()

	uc.notify(ctx, appt)
	return appt, nil
}

func (uc *UseCase) notify(ctx context.Context, appt *entity.Appointment) {
	if uc.messenger == nil {
		return
	}
	client, err := uc.clients.GetByID(ctx, appt.ClientID)
	if err != nil || client == nil {
		uc.log.Warn().Err(err).Str("appointment_id", appt.ID).Msg("cita sin cliente para avisar")
		return
	}
	if err := uc.messenger.SendText(ctx, client.Phone, statusMessage(client.Name, appt)); err != nil {
		uc.log.Warn().Err(err).Str("appointment_id", appt.ID).Str("client_id", client.ID).
			Msg("no se pudo enviar el aviso de WhatsApp")
	}
}

func statusMessage(name string, appt *entity.Appointment) string {
	when := appt.ScheduledAt.Format("02/01/2006 15:04")
	switch appt.Status {
	case entity.AppointmentStatusConfirmed:
		return fmt.Sprintf("Hola %s, su cita del %s quedó confirmada.", name, when)
	case entity.AppointmentStatusCancelled:
		return fmt.Sprintf("Hola %s, su cita del %s fue cancelada.", name, when)
	case entity.AppointmentStatusCompleted:
		return fmt.Sprintf("Hola %s, gracias por su preferencia. El servicio del %s quedó completado.", name, when)
	default:
		return fmt.Sprintf("Hola %s, su cita quedó programada para el %s.", name, when)
	}
}
