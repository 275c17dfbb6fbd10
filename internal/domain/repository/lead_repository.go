package repository

import (
	"context"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

// LeadRepository define el puerto de persistencia para prospectos.
type LeadRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
