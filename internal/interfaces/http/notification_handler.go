package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servihogar-api/internal/application/dto"
	"github.com/jhoicas/servihogar-api/internal/application/notifications"
)

// NotificationHandler lecturas del poller de notificaciones.
type NotificationHandler struct {
	uc *notifications.UseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notifications.UseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// ListUnread godoc
// @Summary      Notificaciones no leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200    {array}  entity.Notification
// @Router       /api/notifications [get]
func (h *NotificationHandler) ListUnread(c *fiber.Ctx) error {
	list, err := h.uc.ListUnread(c.UserContext(), c.QueryInt("limit", 20))
	if err != nil {
		return writeError(c, err, "")
	}
	if list == nil {
		return c.JSON([]any{})
	}
	return c.JSON(list)
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, "notificación no encontrada")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
