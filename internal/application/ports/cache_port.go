package ports

import "context"

// NotificationCache invalida las lecturas cacheadas de notificaciones.
// Los flujos que agregan notificaciones lo llaman después del commit.
type NotificationCache interface {
	Invalidate(ctx context.Context) error
}
