package domain

import "time"

// StudySession es un hilo de conversacion de estudio de un usuario.
type StudySession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}
