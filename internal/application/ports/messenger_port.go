package ports

import "context"

// Messenger envía mensajes salientes al cliente (WhatsApp).
// Sus fallas nunca deben deshacer el cambio de estado que las originó.
type Messenger interface {
	SendText(ctx context.Context, phone, body string) error
}
