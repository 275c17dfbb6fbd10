// Package messaging mensajería saliente hacia clientes.
package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/servihogar-api/internal/application/ports"
	"github.com/jhoicas/servihogar-api/internal/domain"
)

var _ ports.Messenger = (*WhatsAppClient)(nil)

// WhatsAppClient envía mensajes de texto por la Cloud API de WhatsApp.
type WhatsAppClient struct {
	phoneID string
	client  *resty.Client
}

// NewWhatsAppClient construye el cliente. baseURL suele ser https://graph.facebook.com/v19.0.
func NewWhatsAppClient(baseURL, token, phoneID string) *WhatsAppClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(300 * time.Millisecond)
	return &WhatsAppClient{phoneID: phoneID, client: client}
}

type textMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendText envía body al teléfono indicado. Las fallas se reportan como ErrUpstream.
func (c *WhatsAppClient) SendText(ctx context.Context, phone, body string) error {
	if phone == "" {
		return fmt.Errorf("%w: cliente sin teléfono", domain.ErrUpstream)
	}
	msg := textMessage{MessagingProduct: "whatsapp", To: phone, Type: "text"}
	msg.Text.Body = body

	var apiErr apiError
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(msg).
		SetError(&apiErr).
		Post("/" + c.phoneID + "/messages")
	if err != nil {
		return fmt.Errorf("%w: whatsapp: %v", domain.ErrUpstream, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: whatsapp HTTP %d: %s", domain.ErrUpstream, resp.StatusCode(), apiErr.Error.Message)
	}
	return nil
}
