package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"studyhub/internal/domain"
	"studyhub/internal/repository"
)

var ErrNoteNotFound = errors.New("note not found")

// NoteService maneja las notas personales de cada usuario.
type NoteService struct {
	notes repository.NoteRepository
}

func NewNoteService(notes repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

func (s *NoteService) List(ctx context.Context, userID string) ([]domain.Note, error) {
	return s.notes.ListByUserID(ctx, userID)
}

func (s *NoteService) Create(ctx context.Context, userID, title, content string) (domain.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Note{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	note := domain.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, userID, noteID, title, content string) (domain.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Note{}, ErrInvalidInput
	}

	note, err := s.notes.GetForUser(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Note{}, ErrNoteNotFound
		}
		return domain.Note{}, err
	}

	note.Title = title
	note.Content = content
	note.UpdatedAt = time.Now().UTC()

	if err := s.notes.Update(ctx, note); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Note{}, ErrNoteNotFound
		}
		return domain.Note{}, err
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	err := s.notes.Delete(ctx, noteID, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoteNotFound
	}
	return err
}
