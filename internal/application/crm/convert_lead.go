package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/servihogar-api/internal/application/dto"
	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

// ConvertLeadUseCase promueve un prospecto a cliente.
type ConvertLeadUseCase struct {
	tx  TxRunner
	log zerolog.Logger
}

// NewConvertLeadUseCase construye el caso de uso.
func NewConvertLeadUseCase(tx TxRunner, log zerolog.Logger) *ConvertLeadUseCase {
	return &ConvertLeadUseCase{tx: tx, log: log}
}

// ConvertLead crea el cliente con los datos de contacto del prospecto y deja el prospecto
// en Ganado. Ambas escrituras ocurren juntas o ninguna.
func (uc *ConvertLeadUseCase) ConvertLead(ctx context.Context, leadID string) (*dto.ClientResponse, error) {
	if leadID == "" {
		return nil, domain.ErrInvalidInput
	}

	var client *entity.Client
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		lead, err := repos.Leads.GetByID(ctx, leadID)
		if err != nil {
			return err
		}
		if lead == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		client = &entity.Client{
			ID:        uuid.New().String(),
			Name:      lead.Name,
			Email:     lead.Email,
			Phone:     lead.Phone,
			Status:    entity.ClientStatusActive,
			Type:      entity.ClientTypeResidential,
			Notes:     fmt.Sprintf("Convertido desde prospecto #%s", lead.ID),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repos.Clients.Create(ctx, client); err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		if err := repos.Leads.UpdateStatus(ctx, lead.ID, entity.LeadStatusWon); err != nil {
			return fmt.Errorf("update lead: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("lead_id", leadID).Str("client_id", client.ID).Msg("prospecto convertido")
	return &dto.ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Status:    client.Status,
		Type:      client.Type,
		Notes:     client.Notes,
		CreatedAt: client.CreatedAt,
	}, nil
}
