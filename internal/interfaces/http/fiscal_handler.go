package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servihogar-api/internal/application/dto"
	"github.com/jhoicas/servihogar-api/internal/application/fiscal"
)

// FiscalHandler bandeja fiscal (protegido).
type FiscalHandler struct {
	uc *fiscal.UseCase
}

// NewFiscalHandler construye el handler.
func NewFiscalHandler(uc *fiscal.UseCase) *FiscalHandler {
	return &FiscalHandler{uc: uc}
}

// Receive godoc
// @Summary      Recibir CFDI en la bandeja
// @Tags         fiscal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveXMLRequest  true  "XML del comprobante"
// @Success      201   {object}  dto.FiscalDocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fiscal-inbox [post]
func (h *FiscalHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveXMLRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ReceiveXML(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "comprobante no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar bandeja fiscal
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Sin vincular | Vinculado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.FiscalInboxResponse
// @Router       /api/fiscal-inbox [get]
func (h *FiscalHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListInbox(c.UserContext(), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
