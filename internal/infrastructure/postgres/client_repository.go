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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	query := `
		INSERT INTO clients (id, name, email, phone, address, status, type, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		client.ID, client.Name, nullIfEmpty(client.Email), nullIfEmpty(client.Phone), nullIfEmpty(client.Address),
		client.Status, client.Type, client.Notes, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `
		SELECT id, name, email, phone, address, status, type, notes, created_at, updated_at
		FROM clients WHERE id = $1`
	var c entity.Client
	var email, phone, address *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &email, &phone, &address, &c.Status, &c.Type, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	c.Email = derefString(email)
	c.Phone = derefString(phone)
	c.Address = derefString(address)
	return &c, nil
}
