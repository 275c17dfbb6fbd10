package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks sobre una copia del estado y la publica solo si no hay error.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run serializa la transacción completa: equivale a aislamiento SERIALIZABLE.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: begin transaction: %v", domain.ErrTransactionFailed, err)
	}
	work := s.st.clone()
	if err := fn(reposFor(s, work)); err != nil {
		return err
	}
	// Un contexto cancelado a mitad del flujo nunca publica el resultado.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: commit transaction: %v", domain.ErrTransactionFailed, err)
	}
	if err := s.fail("tx.Commit"); err != nil {
		return fmt.Errorf("%w: commit transaction: %v", domain.ErrTransactionFailed, err)
	}
	s.st = work
	return nil
}

// Repos devuelve repositorios en modo autocommit (fuera de transacción).
func (s *Store) Repos() repository.Repos {
	return reposFor(s, nil)
}

// AppointmentRepository devuelve el repositorio de citas (autocommit).
func (s *Store) AppointmentRepository() repository.AppointmentRepository {
	return &appointmentRepo{base{store: s}}
}

// AIInteractionRepository devuelve la bitácora del asistente (autocommit).
func (s *Store) AIInteractionRepository() repository.AIInteractionRepository {
	return &aiRepo{base{store: s}}
}

func reposFor(s *Store, tx *state) repository.Repos {
	b := base{store: s, tx: tx}
	return repository.Repos{
		Orders:        &orderRepo{b},
		Quotes:        &quoteRepo{b},
		Products:      &productRepo{b},
		Movements:     &movementRepo{b},
		Leads:         &leadRepo{b},
		Clients:       &clientRepo{b},
		Fiscal:        &fiscalRepo{b},
		Notifications: &notificationRepo{b},
	}
}
