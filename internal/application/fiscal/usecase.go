package fiscal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/servihogar-api/internal/application/dto"
	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

// UseCase bandeja fiscal y vinculación de comprobantes con órdenes.
type UseCase struct {
	tx     TxRunner
	docs   repository.FiscalDocumentRepository
	parser DocumentParser
	log    zerolog.Logger
}

// NewUseCase construye el caso de uso. docs se usa para lecturas fuera de tx.
func NewUseCase(tx TxRunner, docs repository.FiscalDocumentRepository, parser DocumentParser, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, docs: docs, parser: parser, log: log}
}

// LinkFiscalDocument copia el comprobante en la orden (fiscal_status Timbrado) y marca el
// comprobante como Vinculado. Ambas escrituras ocurren juntas o ninguna.
//
// Volver a vincular un comprobante ya vinculado está permitido; la orden anterior conserva
// su copia desactualizada.
func (uc *UseCase) LinkFiscalDocument(ctx context.Context, orderID, fiscalUUID string) error {
	// El parser guarda el folio en mayúsculas.
	fiscalUUID = strings.ToUpper(strings.TrimSpace(fiscalUUID))
	if orderID == "" || fiscalUUID == "" {
		return domain.ErrInvalidInput
	}

	var previous *string
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		doc, err := repos.Fiscal.GetByUUID(ctx, fiscalUUID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		order, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if doc.OrderID != nil && *doc.OrderID != order.ID {
			previous = doc.OrderID
		}

		if err := repos.Orders.UpdateFiscal(ctx, order.ID, doc.Snapshot(time.Now()), entity.FiscalStatusStamped); err != nil {
			return fmt.Errorf("update order fiscal data: %w", err)
		}
		if err := repos.Fiscal.MarkLinked(ctx, doc.UUID, order.ID); err != nil {
			return fmt.Errorf("link fiscal document: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if previous != nil {
		uc.log.Warn().Str("uuid", fiscalUUID).Str("order_id", orderID).Str("previous_order_id", *previous).
			Msg("comprobante revinculado; la orden anterior conserva datos fiscales obsoletos")
	}
	uc.log.Info().Str("uuid", fiscalUUID).Str("order_id", orderID).Msg("comprobante vinculado")
	return nil
}

// ReceiveXML registra en la bandeja un comprobante recibido por un canal externo.
// El mismo comprobante (mismo UUID o mismo XML canónico) se rechaza con ErrDuplicate.
func (uc *UseCase) ReceiveXML(ctx context.Context, in dto.ReceiveXMLRequest) (*dto.FiscalDocumentResponse, error) {
	if strings.TrimSpace(in.XML) == "" {
		return nil, domain.ErrInvalidInput
	}
	doc, err := uc.parser.Parse([]byte(in.XML))
	if err != nil {
		return nil, err
	}
	doc.XMLURL = in.XMLURL
	doc.PDFURL = in.PDFURL

	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		existing, err := repos.Fiscal.GetByDigest(ctx, doc.Digest)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		return repos.Fiscal.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("uuid", doc.UUID).Str("emitter", doc.EmitterRFC).Msg("comprobante recibido")
	return toFiscalResponse(doc), nil
}

// ListInbox lista la bandeja, filtrada opcionalmente por estado.
func (uc *UseCase) ListInbox(ctx context.Context, status string, page dto.PageRequest) (*dto.FiscalInboxResponse, error) {
	page.DefaultPage()
	if status != "" && status != entity.FiscalDocStatusUnlinked && status != entity.FiscalDocStatusLinked {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.docs.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FiscalDocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toFiscalResponse(d))
	}
	return &dto.FiscalInboxResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func toFiscalResponse(d *entity.FiscalDocument) *dto.FiscalDocumentResponse {
	return &dto.FiscalDocumentResponse{
		ID:           d.ID,
		UUID:         d.UUID,
		EmitterRFC:   d.EmitterRFC,
		EmitterName:  d.EmitterName,
		ReceiverRFC:  d.ReceiverRFC,
		ReceiverName: d.ReceiverName,
		Amount:       d.Amount,
		XMLURL:       d.XMLURL,
		PDFURL:       d.PDFURL,
		Status:       d.Status,
		OrderID:      d.OrderID,
		ReceivedAt:   d.ReceivedAt,
	}
}
