package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrTransactionFailed = errors.New("transacción abortada")
	// ErrUpstream agrupa fallas de colaboradores externos (mensajería, IA, caché).
	// Nunca debe abortar la transacción que la originó.
	ErrUpstream = errors.New("servicio externo no disponible")
)
