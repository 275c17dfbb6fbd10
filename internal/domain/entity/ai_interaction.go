package entity

import "time"

// AIInteraction registro de una consulta al asistente de IA y su respuesta.
type AIInteraction struct {
	ID        string
	Actor     string
	Prompt    string
	Reply     string
	CreatedAt time.Time
}
