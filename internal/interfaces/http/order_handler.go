package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servihogar-api/internal/application/dto"
	"github.com/jhoicas/servihogar-api/internal/application/fiscal"
	"github.com/jhoicas/servihogar-api/internal/application/orders"
)

// OrderHandler flujos transaccionales de la orden de servicio (protegido).
type OrderHandler struct {
	uc     *orders.UseCase
	fiscal *fiscal.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase, fiscalUC *fiscal.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc, fiscal: fiscalUC}
}

// ApplyPayment godoc
// @Summary      Registrar abono a una orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ApplyPaymentRequest  true  "Monto y método"
// @Success      200   {object}  dto.ApplyPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payments [post]
func (h *OrderHandler) ApplyPayment(c *fiber.Ctx) error {
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ApplyPayment(c.UserContext(), c.Params("id"), in.Amount, in.PaymentMethod)
	if err != nil {
		return writeError(c, err, "orden no encontrada")
	}
	return c.JSON(dto.ApplyPaymentResponse{NewPaidAmount: out.NewPaidAmount, Status: out.Status})
}

// Complete godoc
// @Summary      Completar orden (descuenta inventario)
// @Description  No es idempotente: completar dos veces descuenta dos veces.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/complete [post]
func (h *OrderHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.CompleteOrder(c.UserContext(), c.Params("id"), GetActor(c))
	if err != nil {
		return writeError(c, err, "orden o cotización no encontrada")
	}
	return c.JSON(dto.SuccessResponse{Success: out.Success})
}

// LinkFiscal godoc
// @Summary      Vincular comprobante fiscal a la orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.LinkFiscalRequest  true  "UUID del comprobante"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/fiscal-link [post]
func (h *OrderHandler) LinkFiscal(c *fiber.Ctx) error {
	var in dto.LinkFiscalRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.fiscal.LinkFiscalDocument(c.UserContext(), c.Params("id"), in.UUID); err != nil {
		return writeError(c, err, "orden o comprobante no encontrado")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
