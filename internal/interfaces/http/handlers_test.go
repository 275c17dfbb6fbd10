package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/servihogar-api/internal/application/appointments"
	"github.com/jhoicas/servihogar-api/internal/application/crm"
	"github.com/jhoicas/servihogar-api/internal/application/fiscal"
	"github.com/jhoicas/servihogar-api/internal/application/inventory"
	"github.com/jhoicas/servihogar-api/internal/application/notifications"
	"github.com/jhoicas/servihogar-api/internal/application/orders"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/infrastructure/cfdi"
	"github.com/jhoicas/servihogar-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/servihogar-api/internal/interfaces/http"
)

type stubRenderer struct{}

func (stubRenderer) RenderKardex(*entity.Product, []*entity.InventoryMovement) ([]byte, error) {
	return []byte("%PDF-1.4 kardex"), nil
}

// newTestServer arma la API completa sobre el store en memoria.
func newTestServer(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	repos := store.Repos()

	notificationsUC := notifications.NewUseCase(repos.Notifications, nil, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		OrdersUC:        orders.NewUseCase(tx, notificationsUC, log),
		InventoryUC:     inventory.NewUseCase(tx, repos.Products, repos.Movements, stubRenderer{}, log),
		CRMUC:           crm.NewConvertLeadUseCase(tx, log),
		FiscalUC:        fiscal.NewUseCase(tx, repos.Fiscal, cfdi.NewParser(), log),
		NotificationsUC: notificationsUC,
		AppointmentsUC:  appointments.NewUseCase(store.AppointmentRepository(), repos.Clients, nil, log),
		JWTSecret:       testJWTSecret,
	})
	return app, store
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, out
}

func seedCompletableOrder(store *memory.Store, stock, qty int) {
	store.PutProduct(entity.Product{ID: "p-1", Name: "Filtro de agua", Type: entity.ProductTypeGood, Stock: stock})
	store.PutQuote(entity.Quote{ID: "q-1", Items: []entity.QuoteItem{{ProductID: "p-1", Quantity: qty}}})
	store.PutOrder(entity.Order{
		ID: "o-1", QuoteID: "q-1", Total: decimal.NewFromInt(1000), PaidAmount: decimal.Zero,
		Status: entity.OrderStatusPending, FiscalStatus: entity.FiscalStatusPending,
	})
}

func TestHealth_Publico(t *testing.T) {
	app, _ := newTestServer(t)
	resp, body := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ok")
}

func TestApplyPayment_HTTP(t *testing.T) {
	app, store := newTestServer(t)
	seedCompletableOrder(store, 10, 1)

	resp, body := call(t, app, http.MethodPost, "/api/orders/o-1/payments", "gerente",
		map[string]any{"amount": "1000", "payment_method": "efectivo"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, entity.OrderStatusCompleted, out["status"])

	order, _ := store.Order("o-1")
	assert.True(t, order.PaidAmount.Equal(decimal.NewFromInt(1000)))
}

func TestApplyPayment_HTTP_Errores(t *testing.T) {
	app, store := newTestServer(t)
	seedCompletableOrder(store, 10, 1)

	resp, body := call(t, app, http.MethodPost, "/api/orders/o-1/payments", "gerente",
		map[string]any{"amount": "0"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")

	resp, body = call(t, app, http.MethodPost, "/api/orders/no-existe/payments", "admin",
		map[string]any{"amount": "10"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")

	resp, _ = call(t, app, http.MethodPost, "/api/orders/o-1/payments", "tecnico",
		map[string]any{"amount": "10"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCompleteOrder_HTTP_DescuentaStockYNotifica(t *testing.T) {
	app, store := newTestServer(t)
	seedCompletableOrder(store, 7, 3)

	resp, body := call(t, app, http.MethodPost, "/api/orders/o-1/complete", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `{"success":true}`, string(body))

	p, _ := store.Product("p-1")
	assert.Equal(t, 4, p.Stock)
	require.Len(t, store.Movements("p-1"), 1)

	resp, body = call(t, app, http.MethodGet, "/api/notifications", "tecnico", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Stock bajo", list[0]["title"])

	resp, _ = call(t, app, http.MethodPatch, "/api/notifications/"+list[0]["id"].(string)+"/read", "tecnico", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = call(t, app, http.MethodGet, "/api/notifications", "tecnico", nil)
	assert.JSONEq(t, `[]`, string(body))
}

func TestProducts_HTTP_CrearAjustarYKardex(t *testing.T) {
	app, store := newTestServer(t)

	resp, body := call(t, app, http.MethodPost, "/api/products", "tecnico",
		map[string]any{"name": "Manguera", "type": "producto", "price": "150", "stock": 8})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	id := created["id"].(string)

	resp, _ = call(t, app, http.MethodPut, "/api/products/"+id, "tecnico", map[string]any{"stock": 2})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = call(t, app, http.MethodPut, "/api/products/"+id, "gerente", map[string]any{"stock": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	p, _ := store.Product(id)
	assert.Equal(t, 2, p.Stock)

	resp, body = call(t, app, http.MethodGet, "/api/products/"+id+"/reconciliation", "tecnico", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"balanced":true`)

	resp, body = call(t, app, http.MethodGet, "/api/products/"+id+"/movements?limit=500", "tecnico", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Ajuste manual")
	assert.Contains(t, string(body), "Inventario inicial")

	resp, body = call(t, app, http.MethodGet, "/api/products/"+id+"/kardex.pdf", "tecnico", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestConvertLead_HTTP(t *testing.T) {
	app, store := newTestServer(t)
	store.PutLead(entity.Lead{ID: "l-1", Name: "Carlos Ruiz", Phone: "5551234567", Status: entity.LeadStatusQuoted})

	resp, body := call(t, app, http.MethodPost, "/api/leads/l-1/convert", "gerente", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	lead, _ := store.Lead("l-1")
	assert.Equal(t, entity.LeadStatusWon, lead.Status)
	require.Len(t, store.Clients(), 1)

	resp, _ = call(t, app, http.MethodPost, "/api/leads/nada/convert", "gerente", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLinkFiscal_HTTP(t *testing.T) {
	app, store := newTestServer(t)
	seedCompletableOrder(store, 10, 1)
	store.PutFiscalDocument(entity.FiscalDocument{
		ID: "f-1", UUID: "ABC-123", EmitterRFC: "AAA010101AAA", Amount: decimal.NewFromInt(1000),
		Status: entity.FiscalDocStatusUnlinked,
	})

	resp, body := call(t, app, http.MethodPost, "/api/orders/o-1/fiscal-link", "admin", map[string]any{"uuid": "ABC-123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	order, _ := store.Order("o-1")
	assert.Equal(t, entity.FiscalStatusStamped, order.FiscalStatus)
	doc, _ := store.FiscalDocument("ABC-123")
	assert.Equal(t, entity.FiscalDocStatusLinked, doc.Status)

	resp, _ = call(t, app, http.MethodGet, "/api/fiscal-inbox?status=Vinculado", "admin", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAppointmentStatus_HTTP_SinMensajero(t *testing.T) {
	app, store := newTestServer(t)
	store.PutAppointment(entity.Appointment{ID: "a-1", ClientID: "c-1", Status: entity.AppointmentStatusScheduled})

	resp, body := call(t, app, http.MethodPatch, "/api/appointments/a-1/status", "tecnico",
		map[string]any{"status": entity.AppointmentStatusConfirmed})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	appt, _ := store.Appointment("a-1")
	assert.Equal(t, entity.AppointmentStatusConfirmed, appt.Status)

	resp, _ = call(t, app, http.MethodPatch, "/api/appointments/a-1/status", "tecnico",
		map[string]any{"status": "Inventado"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAI_RutaDeshabilitadaSinProveedor(t *testing.T) {
	app, _ := newTestServer(t)
	resp, _ := call(t, app, http.MethodPost, "/api/ai/ask", "admin", map[string]any{"prompt": "hola"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
