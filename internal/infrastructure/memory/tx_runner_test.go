package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
	"github.com/jhoicas/servihogar-api/internal/infrastructure/memory"
)

func TestTxRunner_PublicaSoloAlConfirmar(t *testing.T) {
	store := memory.NewStore()
	store.PutProduct(entity.Product{ID: "p-1", Type: entity.ProductTypeGood, Stock: 10})
	runner := memory.NewTxRunner(store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := runner.Run(ctx, func(repos repository.Repos) error {
		require.NoError(t, repos.Products.UpdateStock(ctx, "p-1", 3))
		require.NoError(t, repos.Notifications.Append(ctx, "t", "m", entity.NotificationTypeInfo))

		// dentro de la tx se ve la escritura previa
		p, err := repos.Products.GetForUpdate(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, 3, p.Stock)
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, _ := store.Product("p-1")
	assert.Equal(t, 10, p.Stock, "la tx abortada no debe dejar rastro")
	assert.Empty(t, store.Notifications())

	err = runner.Run(ctx, func(repos repository.Repos) error {
		return repos.Products.UpdateStock(ctx, "p-1", 3)
	})
	require.NoError(t, err)
	p, _ = store.Product("p-1")
	assert.Equal(t, 3, p.Stock)
}

func TestTxRunner_FallaEnCommit(t *testing.T) {
	store := memory.NewStore()
	store.PutProduct(entity.Product{ID: "p-1", Stock: 10})
	store.FailOn("tx.Commit", errors.New("conexión perdida"))
	ctx := context.Background()

	err := memory.NewTxRunner(store).Run(ctx, func(repos repository.Repos) error {
		return repos.Products.UpdateStock(ctx, "p-1", 1)
	})
	require.ErrorIs(t, err, domain.ErrTransactionFailed)
	p, _ := store.Product("p-1")
	assert.Equal(t, 10, p.Stock)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := memory.NewTxRunner(store).Run(ctx, func(repository.Repos) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, domain.ErrTransactionFailed)
	assert.False(t, called)
}

func TestFailOn_InyectaYLimpia(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repos := store.Repos()
	injected := errors.New("disco lleno")

	store.FailOn("leads.GetByID", injected)
	_, err := repos.Leads.GetByID(ctx, "l-1")
	require.ErrorIs(t, err, injected)

	store.FailOn("leads.GetByID", nil)
	lead, err := repos.Leads.GetByID(ctx, "l-1")
	require.NoError(t, err)
	assert.Nil(t, lead, "un registro inexistente devuelve nil, nil")
}

func TestNotifications_NoLeidasMasRecientesPrimero(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repos := store.Repos()

	require.NoError(t, repos.Notifications.Append(ctx, "uno", "m", entity.NotificationTypeInfo))
	require.NoError(t, repos.Notifications.Append(ctx, "dos", "m", entity.NotificationTypeWarning))

	list, err := repos.Notifications.ListUnread(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "dos", list[0].Title)

	require.NoError(t, repos.Notifications.MarkRead(ctx, list[0].ID))
	list, err = repos.Notifications.ListUnread(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "uno", list[0].Title)

	assert.ErrorIs(t, repos.Notifications.MarkRead(ctx, "no-existe"), domain.ErrNotFound)
}
