package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo lectura de cotizaciones. Las líneas viven en la columna JSONB items.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador.
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// GetByID obtiene la cotización con sus líneas en el orden en que fueron capturadas.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	query := `SELECT id, client_id, items, total, created_at FROM quotes WHERE id = $1`
	var q entity.Quote
	var clientID *string
	var items []byte
	err := r.q.QueryRow(ctx, query, id).Scan(&q.ID, &clientID, &items, &q.Total, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	q.ClientID = derefString(clientID)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &q.Items); err != nil {
			return nil, fmt.Errorf("decode quote items: %w", err)
		}
	}
	return &q, nil
}
