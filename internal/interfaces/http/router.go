package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servihogar-api/internal/application/ai"
	"github.com/jhoicas/servihogar-api/internal/application/appointments"
	"github.com/jhoicas/servihogar-api/internal/application/crm"
	"github.com/jhoicas/servihogar-api/internal/application/fiscal"
	"github.com/jhoicas/servihogar-api/internal/application/inventory"
	"github.com/jhoicas/servihogar-api/internal/application/notifications"
	"github.com/jhoicas/servihogar-api/internal/application/orders"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

// RouterDeps dependencias para el router. AIUC puede ser nil (asistente deshabilitado).
type RouterDeps struct {
	OrdersUC        *orders.UseCase
	InventoryUC     *inventory.UseCase
	CRMUC           *crm.ConvertLeadUseCase
	FiscalUC        *fiscal.UseCase
	NotificationsUC *notifications.UseCase
	AppointmentsUC  *appointments.UseCase
	AIUC            *ai.UseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)
	staff := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleTechnician)

	// Orders
	orderHandler := NewOrderHandler(deps.OrdersUC, deps.FiscalUC)
	ordersGroup := api.Group("/orders")
	ordersGroup.Post("/:id/payments", managers, orderHandler.ApplyPayment)
	ordersGroup.Post("/:id/complete", managers, orderHandler.Complete)
	ordersGroup.Post("/:id/fiscal-link", managers, orderHandler.LinkFiscal)

	// Products + kardex
	productHandler := NewProductHandler(deps.InventoryUC)
	products := api.Group("/products")
	products.Post("/", staff, productHandler.Create)
	products.Put("/:id", managers, productHandler.Update)
	products.Get("/:id/movements", productHandler.Movements)
	products.Get("/:id/reconciliation", productHandler.Reconciliation)
	products.Get("/:id/kardex.pdf", productHandler.KardexPDF)

	// CRM
	crmHandler := NewCRMHandler(deps.CRMUC)
	api.Post("/leads/:id/convert", managers, crmHandler.ConvertLead)

	// Fiscal inbox
	fiscalHandler := NewFiscalHandler(deps.FiscalUC)
	inbox := api.Group("/fiscal-inbox", managers)
	inbox.Post("/", fiscalHandler.Receive)
	inbox.Get("/", fiscalHandler.List)

	// Notifications (poller de la UI)
	notificationHandler := NewNotificationHandler(deps.NotificationsUC)
	api.Get("/notifications", notificationHandler.ListUnread)
	api.Patch("/notifications/:id/read", notificationHandler.MarkRead)

	// Appointments
	appointmentHandler := NewAppointmentHandler(deps.AppointmentsUC)
	api.Patch("/appointments/:id/status", staff, appointmentHandler.UpdateStatus)

	// AI
	if deps.AIUC != nil {
		aiHandler := NewAIHandler(deps.AIUC)
		api.Post("/ai/ask", aiHandler.Ask)
	}
}
