package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyhub/internal/domain"
)

// NoteRepository define el contrato de persistencia para notas.
// Todas las operaciones por id incluyen el user_id: una nota ajena
// se comporta igual que una inexistente.
type NoteRepository interface {
	Create(ctx context.Context, note domain.Note) error
	GetForUser(ctx context.Context, id, userID string) (domain.Note, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.Note, error)
	Update(ctx context.Context, note domain.Note) error
	Delete(ctx context.Context, id, userID string) error
}

type PgNoteRepository struct {
	pool *pgxpool.Pool
}

func NewPgNoteRepository(pool *pgxpool.Pool) *PgNoteRepository {
	return &PgNoteRepository{pool: pool}
}

func (r *PgNoteRepository) Create(ctx context.Context, note domain.Note) error {
	const query = `
		INSERT INTO notes (id, user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.CreatedAt,
		note.UpdatedAt,
	)
	return err
}

func (r *PgNoteRepository) GetForUser(ctx context.Context, id, userID string) (domain.Note, error) {
	const query = `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE id = $1 AND user_id = $2
	`
	var note domain.Note
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Note{}, err
	}
	return note, err
}

func (r *PgNoteRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Note, error) {
	const query = `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *PgNoteRepository) Update(ctx context.Context, note domain.Note) error {
	const query = `
		UPDATE notes
		SET title = $3, content = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgNoteRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `
		DELETE FROM notes WHERE id = $1 AND user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
