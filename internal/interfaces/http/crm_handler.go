package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servihogar-api/internal/application/crm"
)

// CRMHandler conversión de prospectos (protegido).
type CRMHandler struct {
	uc *crm.ConvertLeadUseCase
}

// NewCRMHandler construye el handler.
func NewCRMHandler(uc *crm.ConvertLeadUseCase) *CRMHandler {
	return &CRMHandler{uc: uc}
}

// ConvertLead godoc
// @Summary      Convertir prospecto en cliente
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del prospecto"
// @Success      201  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/convert [post]
func (h *CRMHandler) ConvertLead(c *fiber.Ctx) error {
	out, err := h.uc.ConvertLead(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "prospecto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
