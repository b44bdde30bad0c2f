package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyhub/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message domain.ChatMessage) error
	ListBySessionID(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
	// ListRecentBySessionID devuelve los ultimos `limit` mensajes de la sesion
	// en orden cronologico ascendente (el mas viejo de la ventana primero).
	ListRecentBySessionID(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error)
}

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// Create inserta el mensaje. La columna seq (bigserial) desempata mensajes
// con el mismo created_at dentro de una sesion.
func (r *PgMessageRepository) Create(ctx context.Context, message domain.ChatMessage) error {
	const query = `
		INSERT INTO chat_messages (id, session_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.SessionID,
		string(message.Role),
		message.Content,
		message.CreatedAt,
	)
	return err
}

func (r *PgMessageRepository) ListBySessionID(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	const query = `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at ASC, seq ASC
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *PgMessageRepository) ListRecentBySessionID(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error) {
	const query = `
		SELECT id, session_id, role, content, created_at
		FROM (
			SELECT id, session_id, role, content, created_at, seq
			FROM chat_messages
			WHERE session_id = $1
			ORDER BY created_at DESC, seq DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC, seq ASC
	`
	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]domain.ChatMessage, error) {
	var messages []domain.ChatMessage
	for rows.Next() {
		var (
			msg  domain.ChatMessage
			role string
		)
		err := rows.Scan(
			&msg.ID,
			&msg.SessionID,
			&role,
			&msg.Content,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		msg.Role = domain.MessageRole(role)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
