package repository

import (
	"context"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

// FiscalDocumentRepository puerto de la bandeja fiscal.
type FiscalDocumentRepository interface {
	Create(ctx context.Context, doc *entity.FiscalDocument) error
	GetByUUID(ctx context.Context, uuid string) (*entity.FiscalDocument, error)
	GetByDigest(ctx context.Context, digest string) (*entity.FiscalDocument, error)
	MarkLinked(ctx context.Context, uuid, orderID string) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.FiscalDocument, error)
}
