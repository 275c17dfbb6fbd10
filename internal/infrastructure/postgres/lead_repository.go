package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementación de LeadRepository (usable con pool o tx).
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador.
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

// GetByID obtiene un prospecto por ID.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT id, name, email, phone, source, status, notes, created_at, updated_at
		FROM leads WHERE id = $1`
	var l entity.Lead
	var email, phone, source, notes *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Name, &email, &phone, &source, &l.Status, &notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	l.Email = derefString(email)
	l.Phone = derefString(phone)
	l.Source = derefString(source)
	l.Notes = derefString(notes)
	return &l, nil
}

// UpdateStatus cambia el estado del prospecto.
func (r *LeadRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE leads SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
