package entity

import "time"

// Tipos de notificación.
const (
	NotificationTypeInfo    = "info"
	NotificationTypeWarning = "warning"
)

// Notification evento del sistema consumido por el poller de la UI.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
