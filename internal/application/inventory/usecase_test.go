package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/servihogar-api/internal/application/dto"
	"github.com/jhoicas/servihogar-api/internal/application/inventory"
	"github.com/jhoicas/servihogar-api/internal/application/orders"
	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/infrastructure/memory"
)

var gerente = entity.Actor{UserID: "u-2", Name: "Luis Gerente", Role: entity.RoleManager}

type fakeRenderer struct {
	product *entity.Product
	rows    int
}

func (f *fakeRenderer) RenderKardex(p *entity.Product, movs []*entity.InventoryMovement) ([]byte, error) {
	f.product = p
	f.rows = len(movs)
	return []byte("%PDF-1.4"), nil
}

func newUseCase(store *memory.Store) (*inventory.UseCase, *fakeRenderer) {
	repos := store.Repos()
	r := &fakeRenderer{}
	return inventory.NewUseCase(memory.NewTxRunner(store), repos.Products, repos.Movements, r, zerolog.Nop()), r
}

func intPtr(n int) *int { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// Alta de producto
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_StockInicialRegistraEntrada(t *testing.T) {
	store := memory.NewStore()
	uc, _ := newUseCase(store)

	p, err := uc.Create(context.Background(), gerente, dto.CreateProductRequest{
		Name: "Manguera", Type: entity.ProductTypeGood, Price: decimal.NewFromInt(250), Stock: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, p.Stock)

	movs := store.Movements(p.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.Equal(t, 12, movs[0].Quantity)
	assert.Equal(t, entity.MovementReasonInitial, movs[0].Reason)
	assert.Equal(t, "Luis Gerente", movs[0].Actor)
}

func TestCreate_SinStockNoRegistraMovimiento(t *testing.T) {
	store := memory.NewStore()
	uc, _ := newUseCase(store)

	p, err := uc.Create(context.Background(), gerente, dto.CreateProductRequest{Name: "Visita", Type: entity.ProductTypeService})
	require.NoError(t, err)
	assert.Empty(t, store.Movements(p.ID))
}

func TestCreate_EntradaInvalida(t *testing.T) {
	uc, _ := newUseCase(memory.NewStore())
	cases := []dto.CreateProductRequest{
		{Name: ""},
		{Name: "X", Stock: -1},
		{Name: "X", Type: "otro"},
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), gerente, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestCreate_FallaDelKardexNoDejaProducto(t *testing.T) {
	store := memory.NewStore()
	store.FailOn("movements.Create", errors.New("timeout"))
	uc, _ := newUseCase(store)

	_, err := uc.Create(context.Background(), gerente, dto.CreateProductRequest{Name: "Bomba", Stock: 3})
	require.Error(t, err)
	list, err := store.Repos().Products.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_AjusteRegistraDiferencia(t *testing.T) {
	store := memory.NewStore()
	store.PutProduct(entity.Product{ID: "p-1", Name: "Válvula", Type: entity.ProductTypeGood, Stock: 10})
	uc, _ := newUseCase(store)

	_, err := uc.Update(context.Background(), gerente, "p-1", dto.UpdateProductRequest{Stock: intPtr(4)})
	require.NoError(t, err)
	_, err = uc.AdjustStock(context.Background(), gerente, "p-1", 9)
	require.NoError(t, err)

	movs := store.Movements("p-1")
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.Equal(t, 6, movs[0].Quantity)
	assert.Equal(t, entity.MovementTypeIN, movs[1].Type)
	assert.Equal(t, 5, movs[1].Quantity)
	assert.Equal(t, entity.MovementReasonAdjustment, movs[1].Reason)

	p, _ := store.Product("p-1")
	assert.Equal(t, 9, p.Stock)
}

func TestUpdate_SinCambioDeStockNoEscribeKardex(t *testing.T) {
	store := memory.NewStore()
	store.PutProduct(entity.Product{ID: "p-1", Name: "Válvula", Type: entity.ProductTypeGood, Stock: 10})
	uc, _ := newUseCase(store)

	name := "Válvula 1/2"
	res, err := uc.Update(context.Background(), gerente, "p-1", dto.UpdateProductRequest{Name: &name, Stock: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, "Válvula 1/2", res.Name)
	assert.Empty(t, store.Movements("p-1"))
}

func TestUpdate_FallaAlPersistirRevierteKardex(t *testing.T) {
	store := memory.NewStore()
	store.PutProduct(entity.Product{ID: "p-1", Name: "Válvula", Type: entity.ProductTypeGood, Stock: 10})
	store.FailOn("products.Update", errors.New("deadlock"))
	uc, _ := newUseCase(store)

	_, err := uc.AdjustStock(context.Background(), gerente, "p-1", 2)
	require.Error(t, err)
	assert.Empty(t, store.Movements("p-1"))
	p, _ := store.Product("p-1")
	assert.Equal(t, 10, p.Stock)
}

func TestUpdate_NoEncontrado(t *testing.T) {
	uc, _ := newUseCase(memory.NewStore())
	_, err := uc.AdjustStock(context.Background(), gerente, "p-x", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conciliación
// ──────────────────────────────────────────────────────────────────────────────

// Tras cualquier secuencia de altas, ajustes y ventas el stock coincide con el kardex.
func TestReconcile_SecuenciaMixtaCuadra(t *testing.T) {
	store := memory.NewStore()
	uc, renderer := newUseCase(store)
	ctx := context.Background()

	p, err := uc.Create(ctx, gerente, dto.CreateProductRequest{Name: "Filtro", Type: entity.ProductTypeGood, Stock: 8})
	require.NoError(t, err)
	_, err = uc.AdjustStock(ctx, gerente, p.ID, 15)
	require.NoError(t, err)

	store.PutQuote(entity.Quote{ID: "q-1", Items: []entity.QuoteItem{{ProductID: p.ID, Quantity: 4}}})
	store.PutOrder(entity.Order{ID: "o-1", QuoteID: "q-1", Status: entity.OrderStatusPending})
	ord := orders.NewUseCase(memory.NewTxRunner(store), nil, zerolog.Nop())
	_, err = ord.CompleteOrder(ctx, "o-1", gerente)
	require.NoError(t, err)
	_, err = ord.CompleteOrder(ctx, "o-1", gerente)
	require.NoError(t, err)

	_, err = uc.AdjustStock(ctx, gerente, p.ID, 1)
	require.NoError(t, err)

	rec, err := uc.Reconcile(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, rec.Balanced)
	assert.Equal(t, 1, rec.Stock)
	assert.Equal(t, 1, rec.LedgerBalance)

	pdf, err := uc.KardexPDF(ctx, p.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 5, renderer.rows)
}

func TestReconcile_DetectaDescuadre(t *testing.T) {
	store := memory.NewStore()
	// stock sembrado sin movimientos
	store.PutProduct(entity.Product{ID: "p-1", Name: "Codo", Type: entity.ProductTypeGood, Stock: 3})
	uc, _ := newUseCase(store)

	rec, err := uc.Reconcile(context.Background(), "p-1")
	require.NoError(t, err)
	assert.False(t, rec.Balanced)
	assert.Equal(t, 0, rec.LedgerBalance)
}

func TestListMovements_MasRecientesPrimero(t *testing.T) {
	store := memory.NewStore()
	uc, _ := newUseCase(store)
	ctx := context.Background()

	p, err := uc.Create(ctx, gerente, dto.CreateProductRequest{Name: "Tubo", Stock: 5})
	require.NoError(t, err)
	_, err = uc.AdjustStock(ctx, gerente, p.ID, 2)
	require.NoError(t, err)

	res, err := uc.ListMovements(ctx, p.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, entity.MovementReasonAdjustment, res.Items[0].Reason)
	assert.Equal(t, 20, res.Page.Limit)

	_, err = uc.ListMovements(ctx, "p-x", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
