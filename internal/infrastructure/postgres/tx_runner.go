package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/servihogar-api/internal/application/crm"
	"github.com/jhoicas/servihogar-api/internal/application/fiscal"
	"github.com/jhoicas/servihogar-api/internal/application/inventory"
	"github.com/jhoicas/servihogar-api/internal/application/orders"
	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

// Ensure TxRunner implements the TxRunner port of every workflow.
var (
	_ orders.TxRunner    = (*TxRunner)(nil)
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ crm.TxRunner       = (*TxRunner)(nil)
	_ fiscal.TxRunner    = (*TxRunner)(nil)
)

// TxBeginner abre transacciones; *pgxpool.Pool lo cumple.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido cubre cualquier salida (error, panic o ctx cancelado); tras un Commit
// exitoso es un no-op. Los errores de fn se devuelven sin envolver.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", domain.ErrTransactionFailed, err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(reposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit transaction: %v", domain.ErrTransactionFailed, err)
	}
	return nil
}

// Repos devuelve repositorios sobre el pool (autocommit), para lecturas fuera de flujo.
func Repos(pool *pgxpool.Pool) repository.Repos {
	return reposFor(pool)
}

var _ TxBeginner = (*pgxpool.Pool)(nil)

func reposFor(q Querier) repository.Repos {
	return repository.Repos{
		Orders:        NewOrderRepository(q),
		Quotes:        NewQuoteRepository(q),
		Products:      NewProductRepository(q),
		Movements:     NewInventoryMovementRepository(q),
		Leads:         NewLeadRepository(q),
		Clients:       NewClientRepository(q),
		Fiscal:        NewFiscalDocumentRepository(q),
		Notifications: NewNotificationRepository(q),
	}
}
