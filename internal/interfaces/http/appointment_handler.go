package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servihogar-api/internal/application/appointments"
	"github.com/jhoicas/servihogar-api/internal/application/dto"
)

// AppointmentHandler citas (protegido).
type AppointmentHandler struct {
	uc *appointments.UseCase
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(uc *appointments.UseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una cita
// @Description  Avisa al cliente por WhatsApp; una falla del aviso no revierte el cambio.
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.UpdateAppointmentStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateAppointmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	appt, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err, "cita no encontrada")
	}
	return c.JSON(fiber.Map{"success": true, "id": appt.ID, "status": appt.Status})
}
