package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servihogar-api/internal/application/ai"
	"github.com/jhoicas/servihogar-api/internal/application/dto"
)

// AIHandler asistente de IA (protegido).
type AIHandler struct {
	uc *ai.UseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *ai.UseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Ask godoc
// @Summary      Consultar al asistente
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AIAskRequest  true  "Pregunta"
// @Success      200   {object}  dto.AIAskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/ai/ask [post]
func (h *AIHandler) Ask(c *fiber.Ctx) error {
	var in dto.AIAskRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	reply, err := h.uc.Ask(c.UserContext(), GetActor(c), in.Prompt)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.AIAskResponse{Reply: reply})
}
