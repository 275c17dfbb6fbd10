package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla inventory_movements es de solo inserción.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, actor, type, quantity, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Actor, movement.Type,
		movement.Quantity, movement.Reason, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, actor, type, quantity, reason, created_at
		FROM inventory_movements WHERE product_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	return collectMovements(rows)
}

// AllByProduct devuelve el kardex completo en orden cronológico.
func (r *InventoryMovementRepo) AllByProduct(ctx context.Context, productID string) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, actor, type, quantity, reason, created_at
		FROM inventory_movements WHERE product_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("all by product: %w", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Actor, &m.Type, &m.Quantity, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
