package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyhub/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.StudySession) error
	GetByID(ctx context.Context, id string) (domain.StudySession, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.StudySession, error)
}

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.StudySession) error {
	const query = `
		INSERT INTO study_sessions (id, user_id, topic, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Topic,
		session.CreatedAt,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, id string) (domain.StudySession, error) {
	const query = `
		SELECT id, user_id, topic, created_at
		FROM study_sessions
		WHERE id = $1
	`
	var session domain.StudySession
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.Topic,
		&session.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StudySession{}, err
	}
	return session, err
}

func (r *PgSessionRepository) ListByUserID(ctx context.Context, userID string) ([]domain.StudySession, error) {
	const query = `
		SELECT id, user_id, topic, created_at
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.StudySession
	for rows.Next() {
		var s domain.StudySession
		if err := rows.Scan(&s.ID, &s.UserID, &s.Topic, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
