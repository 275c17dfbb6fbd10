package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

var _ repository.FiscalDocumentRepository = (*FiscalDocumentRepo)(nil)

const fiscalColumns = `id, uuid, emitter_rfc, emitter_name, receiver_rfc, receiver_name, amount, xml_url, pdf_url, digest, status, order_id, received_at, updated_at`

// FiscalDocumentRepo implementación de la bandeja fiscal (tabla fiscal_inbox).
type FiscalDocumentRepo struct {
	q Querier
}

// NewFiscalDocumentRepository construye el adaptador.
func NewFiscalDocumentRepository(q Querier) *FiscalDocumentRepo {
	return &FiscalDocumentRepo{q: q}
}

func scanFiscal(row pgx.Row) (*entity.FiscalDocument, error) {
	var d entity.FiscalDocument
	var xmlURL, pdfURL, digest *string
	err := row.Scan(&d.ID, &d.UUID, &d.EmitterRFC, &d.EmitterName, &d.ReceiverRFC, &d.ReceiverName,
		&d.Amount, &xmlURL, &pdfURL, &digest, &d.Status, &d.OrderID, &d.ReceivedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.XMLURL = derefString(xmlURL)
	d.PDFURL = derefString(pdfURL)
	d.Digest = derefString(digest)
	return &d, nil
}

// Create inserta un documento recibido. UUID duplicado -> ErrDuplicate.
func (r *FiscalDocumentRepo) Create(ctx context.Context, doc *entity.FiscalDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO fiscal_inbox (` + fiscalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.UUID, doc.EmitterRFC, doc.EmitterName, doc.ReceiverRFC, doc.ReceiverName,
		doc.Amount, nullIfEmpty(doc.XMLURL), nullIfEmpty(doc.PDFURL), nullIfEmpty(doc.Digest),
		doc.Status, doc.OrderID, doc.ReceivedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fiscal document: %w", err)
	}
	return nil
}

// GetByUUID obtiene un documento por su folio fiscal.
func (r *FiscalDocumentRepo) GetByUUID(ctx context.Context, uuid string) (*entity.FiscalDocument, error) {
	d, err := scanFiscal(r.q.QueryRow(ctx, `SELECT `+fiscalColumns+` FROM fiscal_inbox WHERE uuid = $1`, uuid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fiscal document: %w", err)
	}
	return d, nil
}

// GetByDigest busca un documento por el digest de su XML canónico.
func (r *FiscalDocumentRepo) GetByDigest(ctx context.Context, digest string) (*entity.FiscalDocument, error) {
	d, err := scanFiscal(r.q.QueryRow(ctx, `SELECT `+fiscalColumns+` FROM fiscal_inbox WHERE digest = $1 LIMIT 1`, digest))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fiscal document by digest: %w", err)
	}
	return d, nil
}

// MarkLinked marca el documento como vinculado a la orden.
func (r *FiscalDocumentRepo) MarkLinked(ctx context.Context, uuid, orderID string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE fiscal_inbox SET status = $2, order_id = $3, updated_at = now() WHERE uuid = $1`,
		uuid, entity.FiscalDocStatusLinked, orderID,
	)
	if err != nil {
		return fmt.Errorf("link fiscal document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista la bandeja, opcionalmente filtrada por estado.
func (r *FiscalDocumentRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.FiscalDocument, error) {
	query := `SELECT ` + fiscalColumns + ` FROM fiscal_inbox`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY received_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fiscal inbox: %w", err)
	}
	defer rows.Close()
	var list []*entity.FiscalDocument
	for rows.Next() {
		d, err := scanFiscal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fiscal document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
