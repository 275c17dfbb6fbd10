package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo sink de notificaciones sobre la tabla notifications.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Append inserta una notificación (dentro de la tx del flujo cuando q es una tx).
func (r *NotificationRepo) Append(ctx context.Context, title, message, notifType string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO notifications (id, title, message, type, read, created_at) VALUES ($1, $2, $3, $4, false, now())`,
		uuid.New().String(), title, message, notifType,
	)
	if err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

// ListUnread devuelve las no leídas, más recientes primero.
func (r *NotificationRepo) ListUnread(ctx context.Context, limit int) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, title, message, type, read, created_at FROM notifications WHERE read = false ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE notifications SET read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
