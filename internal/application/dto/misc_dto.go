package dto

// UpdateAppointmentStatusRequest body para PATCH /api/appointments/:id/status.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
}

// AIAskRequest body para POST /api/ai/ask.
type AIAskRequest struct {
	Prompt string `json:"prompt"`
}

// AIAskResponse respuesta del asistente.
type AIAskResponse struct {
	Reply string `json:"reply"`
}
