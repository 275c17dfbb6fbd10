package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, quote_id, client_id, total, paid_amount, payment_method, status, fiscal_status, fiscal_data, created_at, updated_at`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var clientID, method *string
	var fiscalData []byte
	err := row.Scan(
		&o.ID, &o.QuoteID, &clientID, &o.Total, &o.PaidAmount, &method,
		&o.Status, &o.FiscalStatus, &fiscalData, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.ClientID = derefString(clientID)
	o.PaymentMethod = derefString(method)
	if len(fiscalData) > 0 {
		var snap entity.FiscalSnapshot
		if err := json.Unmarshal(fiscalData, &snap); err != nil {
			return nil, fmt.Errorf("decode fiscal_data: %w", err)
		}
		o.FiscalData = &snap
	}
	return &o, nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// UpdatePayment persiste monto abonado, método y estado.
func (r *OrderRepo) UpdatePayment(ctx context.Context, id string, paidAmount decimal.Decimal, method, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET paid_amount = $2, payment_method = $3, status = $4, updated_at = now() WHERE id = $1`,
		id, paidAmount, nullIfEmpty(method), status,
	)
	if err != nil {
		return fmt.Errorf("update order payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado de la orden.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateFiscal guarda la copia del documento fiscal y el estado de timbrado.
func (r *OrderRepo) UpdateFiscal(ctx context.Context, id string, snapshot *entity.FiscalSnapshot, fiscalStatus string) error {
	var payload []byte
	if snapshot != nil {
		b, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("encode fiscal_data: %w", err)
		}
		payload = b
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET fiscal_data = $2, fiscal_status = $3, updated_at = now() WHERE id = $1`,
		id, payload, fiscalStatus,
	)
	if err != nil {
		return fmt.Errorf("update order fiscal: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
