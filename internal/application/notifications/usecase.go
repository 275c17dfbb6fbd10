package notifications

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/jhoicas/servihogar-api/internal/application/ports"
	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

// Cache caché versionada para las lecturas del poller.
type Cache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
	Bump(ctx context.Context) error
}

var _ ports.NotificationCache = (*UseCase)(nil)

// UseCase lecturas del sink de notificaciones para la UI.
type UseCase struct {
	repo  repository.NotificationRepository
	cache Cache
	log   zerolog.Logger
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(repo repository.NotificationRepository, cache Cache, log zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, cache: cache, log: log}
}

// ListUnread devuelve las notificaciones no leídas, más recientes primero.
// Si la caché falla se lee directo del repositorio.
func (uc *UseCase) ListUnread(ctx context.Context, limit int) ([]*entity.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	load := func(ctx context.Context) (any, error) {
		return uc.repo.ListUnread(ctx, limit)
	}
	if uc.cache == nil {
		return uc.repo.ListUnread(ctx, limit)
	}

	key, err := uc.cache.BuildKey(ctx, "unread", strconv.Itoa(limit))
	if err == nil {
		var out []*entity.Notification
		if err = uc.cache.FetchJSON(ctx, key, &out, load); err == nil {
			return out, nil
		}
	}
	uc.log.Warn().Err(err).Msg("caché de notificaciones no disponible")
	return uc.repo.ListUnread(ctx, limit)
}

// MarkRead marca la notificación como leída e invalida la caché.
func (uc *UseCase) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.repo.MarkRead(ctx, id); err != nil {
		return err
	}
	if err := uc.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de notificaciones")
	}
	return nil
}

// Invalidate incrementa la versión de la caché.
func (uc *UseCase) Invalidate(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Bump(ctx)
}
