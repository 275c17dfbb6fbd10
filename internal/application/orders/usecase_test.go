package orders_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/servihogar-api/internal/application/orders"
	"github.com/jhoicas/servihogar-api/internal/application/ports"
	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var tecnico = entity.Actor{UserID: "u-1", Name: "Ana Técnica", Role: entity.RoleTechnician}

type spyCache struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *spyCache) Invalidate(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

// seedOrder carga una orden con una cotización de una línea del producto p.
func seedOrder(store *memory.Store, total string, qty int, p entity.Product) {
	store.PutProduct(p)
	store.PutQuote(entity.Quote{
		ID:    "q-1",
		Items: []entity.QuoteItem{{ProductID: p.ID, Quantity: qty, UnitPrice: decimal.NewFromInt(100)}},
	})
	store.PutOrder(entity.Order{
		ID:           "o-1",
		QuoteID:      "q-1",
		Total:        decimal.RequireFromString(total),
		PaidAmount:   decimal.Zero,
		Status:       entity.OrderStatusPending,
		FiscalStatus: entity.FiscalStatusPending,
	})
}

func newUseCase(store *memory.Store, cache *spyCache) *orders.UseCase {
	var c ports.NotificationCache
	if cache != nil {
		c = cache
	}
	return orders.NewUseCase(memory.NewTxRunner(store), c, zerolog.Nop())
}

func filtro() entity.Product {
	return entity.Product{ID: "p-1", Name: "Filtro de agua", Type: entity.ProductTypeGood, Stock: 10}
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyPayment
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyPayment_ParcialQuedaPendiente(t *testing.T) {
	store := memory.NewStore()
	seedOrder(store, "1000", 1, filtro())
	uc := newUseCase(store, nil)

	res, err := uc.ApplyPayment(context.Background(), "o-1", decimal.NewFromInt(400), "efectivo")
	require.NoError(t, err)
	assert.True(t, res.NewPaidAmount.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, entity.OrderStatusPending, res.Status)

	o, _ := store.Order("o-1")
	assert.Equal(t, "efectivo", o.PaymentMethod)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
}

func TestApplyPayment_CubreTotalCompleta(t *testing.T) {
	store := memory.NewStore()
	seedOrder(store, "1000", 1, filtro())
	uc := newUseCase(store, nil)

	_, err := uc.ApplyPayment(context.Background(), "o-1", decimal.NewFromInt(600), "tarjeta")
	require.NoError(t, err)
	res, err := uc.ApplyPayment(context.Background(), "o-1", decimal.NewFromInt(400), "tarjeta")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, res.Status)

	// sin efectos sobre inventario
	p, _ := store.Product("p-1")
	assert.Equal(t, 10, p.Stock)
	assert.Empty(t, store.Movements("p-1"))
}

func TestApplyPayment_SobrepagoNoSeLimita(t *testing.T) {
	store := memory.NewStore()
	seedOrder(store, "1000", 1, filtro())
	uc := newUseCase(store, nil)

	res, err := uc.ApplyPayment(context.Background(), "o-1", decimal.NewFromInt(1500), "transferencia")
	require.NoError(t, err)
	assert.True(t, res.NewPaidAmount.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, entity.OrderStatusCompleted, res.Status)
}

func TestApplyPayment_MontoInvalido(t *testing.T) {
	store := memory.NewStore()
	seedOrder(store, "1000", 1, filtro())
	uc := newUseCase(store, nil)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := uc.ApplyPayment(context.Background(), "o-1", amount, "efectivo")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	o, _ := store.Order("o-1")
	assert.True(t, o.PaidAmount.IsZero())
}

func TestApplyPayment_OrdenInexistente(t *testing.T) {
	uc := newUseCase(memory.NewStore(), nil)
	_, err := uc.ApplyPayment(context.Background(), "no-existe", decimal.NewFromInt(10), "efectivo")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyPayment_FallaAlEscribirNoPersiste(t *testing.T) {
	store := memory.NewStore()
	seedOrder(store, "1000", 1, filtro())
	store.FailOn("tx.Commit", errors.New("conexión perdida"))
	uc := newUseCase(store, nil)

	_, err := uc.ApplyPayment(context.Background(), "o-1", decimal.NewFromInt(100), "efectivo")
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	o, _ := store.Order("o-1")
	assert.True(t, o.PaidAmount.IsZero())
}

// Abonos concurrentes sobre la misma orden: el total abonado es la suma de todos.
func TestApplyPayment_ConcurrenteSumaTodo(t *testing.T) {
	store := memory.NewStore()
	seedOrder(store, "100000", 1, filtro())
	uc := newUseCase(store, nil)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 1; i <= workers; i++ {
		amount := decimal.NewFromInt(int64(i))
		go func() {
			defer wg.Done()
			_, err := uc.ApplyPayment(context.Background(), "o-1", amount, "efectivo")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	o, _ := store.Order("o-1")
	assert.True(t, o.PaidAmount.Equal(decimal.NewFromInt(workers*(workers+1)/2)), "got %s", o.PaidAmount)
}

// ──────────────────────────────────────────────────────────────────────────────
// CompleteOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCompleteOrder_DescuentaYRegistraSalida(t *testing.T) {
	store := memory.NewStore()
	seedOrder(store, "300", 3, filtro())
	uc := newUseCase(store, nil)

	res, err := uc.CompleteOrder(context.Background(), "o-1", tecnico)
	require.NoError(t, err)
	assert.True(t, res.Success)

	p, _ := store.Product("p-1")
	assert.Equal(t, 7, p.Stock)
	movs := store.Movements("p-1")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.Equal(t, 3, movs[0].Quantity)
	assert.Equal(t, "Venta - Orden #o-1", movs[0].Reason)
	assert.Equal(t, "Ana Técnica", movs[0].Actor)

	o, _ := store.Order("o-1")
	assert.Equal(t, entity.OrderStatusCompleted, o.Status)
	assert.Empty(t, store.Notifications(), "7 no cruza el umbral")
}

// Completar dos veces descuenta dos veces: el flujo no protege contra repeticiones.
func TestCompleteOrder_NoEsIdempotente(t *testing.T) {
	store := memory.NewStore()
	seedOrder(store, "300", 3, filtro())
	uc := newUseCase(store, nil)

	_, err := uc.CompleteOrder(context.Background(), "o-1", tecnico)
	require.NoError(t, err)
	_, err = uc.CompleteOrder(context.Background(), "o-1", tecnico)
	require.NoError(t, err)

	p, _ := store.Product("p-1")
	assert.Equal(t, 4, p.Stock)
	assert.Len(t, store.Movements("p-1"), 2)
}

// Completados concurrentes de la misma orden: ningún descuento se pierde.
func TestCompleteOrder_ConcurrenteNoPierdeDescuentos(t *testing.T) {
	store := memory.NewStore()
	p := filtro()
	p.Stock = 100
	seedOrder(store, "200", 2, p)
	uc := newUseCase(store, nil)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.CompleteOrder(context.Background(), "o-1", tecnico)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _ := store.Product("p-1")
	assert.Equal(t, 100-workers*2, got.Stock)
	movs := store.Movements("p-1")
	require.Len(t, movs, workers)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeOUT, m.Type)
		assert.Equal(t, 2, m.Quantity)
	}
}

func TestCompleteOrder_StockBajoEmiteUnaAlerta(t *testing.T) {
	store := memory.NewStore()
	p := filtro()
	p.Stock = 6
	seedOrder(store, "200", 2, p)
	cache := &spyCache{}
	uc := newUseCase(store, cache)

	res, err := uc.CompleteOrder(context.Background(), "o-1", tecnico)
	require.NoError(t, err)
	assert.Equal(t, 1, res.LowStock)

	notifs := store.Notifications()
	require.Len(t, notifs, 1)
	assert.Equal(t, entity.NotificationTypeWarning, notifs[0].Type)
	assert.Contains(t, notifs[0].Message, "Filtro de agua")
	assert.Equal(t, 1, cache.calls)
}

func TestCompleteOrder_UmbralFijoIgnoraMinStock(t *testing.T) {
	store := memory.NewStore()
	p := filtro()
	p.MinStock = 20 // quedará en 7, debajo del mínimo propio pero sobre el umbral fijo
	seedOrder(store, "300", 3, p)
	uc := newUseCase(store, nil)

	_, err := uc.CompleteOrder(context.Background(), "o-1", tecnico)
	require.NoError(t, err)
	assert.Empty(t, store.Notifications())
}

func TestCompleteOrder_SobregiroNoSeLimita(t *testing.T) {
	store := memory.NewStore()
	p := filtro()
	p.Stock = 2
	seedOrder(store, "500", 5, p)
	uc := newUseCase(store, nil)

	_, err := uc.CompleteOrder(context.Background(), "o-1", tecnico)
	require.NoError(t, err)
	got, _ := store.Product("p-1")
	assert.Equal(t, -3, got.Stock)
}

func TestCompleteOrder_OmiteServicios(t *testing.T) {
	store := memory.NewStore()
	store.PutProduct(entity.Product{ID: "s-1", Name: "Instalación", Type: entity.ProductTypeService})
	store.PutProduct(filtro())
	store.PutQuote(entity.Quote{ID: "q-1", Items: []entity.QuoteItem{
		{ProductID: "s-1", Quantity: 1},
		{ProductID: "p-1", Quantity: 1},
	}})
	store.PutOrder(entity.Order{ID: "o-1", QuoteID: "q-1", Status: entity.OrderStatusPending})
	uc := newUseCase(store, nil)

	_, err := uc.CompleteOrder(context.Background(), "o-1", tecnico)
	require.NoError(t, err)
	assert.Empty(t, store.Movements("s-1"))
	assert.Len(t, store.Movements("p-1"), 1)
}

// Dos líneas del mismo producto: la segunda ve el stock ya descontado por la primera.
func TestCompleteOrder_LineasRepetidasSeAcumulan(t *testing.T) {
	store := memory.NewStore()
	store.PutProduct(filtro())
	store.PutQuote(entity.Quote{ID: "q-1", Items: []entity.QuoteItem{
		{ProductID: "p-1", Quantity: 2},
		{ProductID: "p-1", Quantity: 3},
	}})
	store.PutOrder(entity.Order{ID: "o-1", QuoteID: "q-1", Status: entity.OrderStatusPending})
	uc := newUseCase(store, nil)

	_, err := uc.CompleteOrder(context.Background(), "o-1", tecnico)
	require.NoError(t, err)
	p, _ := store.Product("p-1")
	assert.Equal(t, 5, p.Stock)
}

func TestCompleteOrder_FallaEnLineaRevierteTodo(t *testing.T) {
	store := memory.NewStore()
	seedOrder(store, "300", 3, filtro())
	store.FailOn("movements.Create", errors.New("disco lleno"))
	uc := newUseCase(store, nil)

	_, err := uc.CompleteOrder(context.Background(), "o-1", tecnico)
	require.Error(t, err)

	p, _ := store.Product("p-1")
	assert.Equal(t, 10, p.Stock, "el descuento no debe quedar persistido")
	o, _ := store.Order("o-1")
	assert.Equal(t, entity.OrderStatusPending, o.Status)
}

func TestCompleteOrder_NoEncontrado(t *testing.T) {
	t.Run("orden", func(t *testing.T) {
		uc := newUseCase(memory.NewStore(), nil)
		_, err := uc.CompleteOrder(context.Background(), "o-x", tecnico)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("cotizacion", func(t *testing.T) {
		store := memory.NewStore()
		store.PutOrder(entity.Order{ID: "o-1", QuoteID: "q-x", Status: entity.OrderStatusPending})
		uc := newUseCase(store, nil)
		_, err := uc.CompleteOrder(context.Background(), "o-1", tecnico)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		o, _ := store.Order("o-1")
		assert.Equal(t, entity.OrderStatusPending, o.Status)
	})
}

func TestCompleteOrder_CotizacionSinLineas(t *testing.T) {
	store := memory.NewStore()
	store.PutQuote(entity.Quote{ID: "q-1"})
	store.PutOrder(entity.Order{ID: "o-1", QuoteID: "q-1", Status: entity.OrderStatusPending})
	uc := newUseCase(store, nil)

	_, err := uc.CompleteOrder(context.Background(), "o-1", tecnico)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompleteOrder_FallaDeCacheNoAfectaResultado(t *testing.T) {
	store := memory.NewStore()
	p := filtro()
	p.Stock = 3
	seedOrder(store, "100", 1, p)
	cache := &spyCache{err: errors.New("redis caído")}
	uc := newUseCase(store, cache)

	res, err := uc.CompleteOrder(context.Background(), "o-1", tecnico)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, cache.calls)
}
