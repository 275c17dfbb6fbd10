package repository

import (
	"context"

	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

// NotificationRepository sink de notificaciones. Append se usa dentro de la transacción del flujo.
type NotificationRepository interface {
	Append(ctx context.Context, title, message, notifType string) error
	ListUnread(ctx context.Context, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
}
