package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"studyhub/internal/domain"
	"studyhub/internal/llm"
)

type mockSessionRepo struct {
	sessions map[string]domain.StudySession
	created  []domain.StudySession
}

func newMockSessionRepo(sessions ...domain.StudySession) *mockSessionRepo {
	repo := &mockSessionRepo{sessions: make(map[string]domain.StudySession)}
	for _, s := range sessions {
		repo.sessions[s.ID] = s
	}
	return repo
}

func (m *mockSessionRepo) Create(ctx context.Context, session domain.StudySession) error {
	m.sessions[session.ID] = session
	m.created = append(m.created, session)
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (domain.StudySession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return domain.StudySession{}, pgx.ErrNoRows
	}
	return session, nil
}

func (m *mockSessionRepo) ListByUserID(ctx context.Context, userID string) ([]domain.StudySession, error) {
	var out []domain.StudySession
	for _, s := range m.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func newTestChatService(sessions *mockSessionRepo, messages *mockMessageRepo, client llm.LLMClient, apiKey string) *ChatService {
	generation := NewGenerationService(zap.NewNop(), client, apiKey)
	generation.sleep = func(d time.Duration) {}
	return NewChatService(
		zap.NewNop(),
		sessions,
		messages,
		NewBasicContextService(messages),
		generation,
	)
}

func TestChatService_Chat(t *testing.T) {
	t.Run("sin session id crea sesion con topic por defecto", func(t *testing.T) {
		sessions := newMockSessionRepo()
		messages := &mockMessageRepo{}
		svc := newTestChatService(sessions, messages, nil, "")

		reply, err := svc.Chat(context.Background(), "u1", "", "", "Hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sessions.created) != 1 {
			t.Fatalf("expected 1 session created, got %d", len(sessions.created))
		}
		session := sessions.created[0]
		if session.Topic != "General Study" || session.UserID != "u1" {
			t.Fatalf("unexpected session: %+v", session)
		}
		if len(messages.creates) != 2 {
			t.Fatalf("expected 2 messages persisted, got %d", len(messages.creates))
		}
		if messages.creates[0].Role != domain.MessageRoleUser || messages.creates[0].Content != "Hello" {
			t.Fatalf("unexpected user message: %+v", messages.creates[0])
		}
		if messages.creates[1].Role != domain.MessageRoleAssistant {
			t.Fatalf("unexpected assistant message: %+v", messages.creates[1])
		}
		if reply.ID != messages.creates[1].ID || reply.SessionID != session.ID {
			t.Fatalf("reply does not match persisted assistant message: %+v", reply)
		}
	})

	t.Run("topic explicito se respeta", func(t *testing.T) {
		sessions := newMockSessionRepo()
		messages := &mockMessageRepo{}
		svc := newTestChatService(sessions, messages, nil, "")

		if _, err := svc.Chat(context.Background(), "u1", "", "Algebra", "help"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sessions.created[0].Topic != "Algebra" {
			t.Fatalf("expected topic Algebra, got %q", sessions.created[0].Topic)
		}
	})

	t.Run("modo mock hace eco del mensaje", func(t *testing.T) {
		sessions := newMockSessionRepo()
		messages := &mockMessageRepo{}
		svc := newTestChatService(sessions, messages, nil, "")

		reply, err := svc.Chat(context.Background(), "u1", "", "", "What is recursion?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(reply.Content, "What is recursion?") {
			t.Fatalf("expected echo in mock reply, got: %q", reply.Content)
		}
	})

	t.Run("sesion ajena se rechaza sin escribir", func(t *testing.T) {
		sessions := newMockSessionRepo(domain.StudySession{ID: "s1", UserID: "other"})
		messages := &mockMessageRepo{}
		svc := newTestChatService(sessions, messages, nil, "")

		_, err := svc.Chat(context.Background(), "u1", "s1", "", "hi")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
		if len(messages.creates) != 0 {
			t.Fatalf("expected no messages persisted, got %d", len(messages.creates))
		}
	})

	t.Run("sesion inexistente se rechaza", func(t *testing.T) {
		svc := newTestChatService(newMockSessionRepo(), &mockMessageRepo{}, nil, "")

		_, err := svc.Chat(context.Background(), "u1", "missing", "", "hi")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("mensaje vacio se rechaza antes de persistir", func(t *testing.T) {
		sessions := newMockSessionRepo()
		messages := &mockMessageRepo{}
		svc := newTestChatService(sessions, messages, nil, "")

		_, err := svc.Chat(context.Background(), "u1", "", "", "   ")
		if !errors.Is(err, ErrEmptyMessage) {
			t.Fatalf("expected ErrEmptyMessage, got %v", err)
		}
		if len(sessions.created) != 0 || len(messages.creates) != 0 {
			t.Fatalf("expected no writes")
		}
	})

	t.Run("generacion agotada igual persiste dos mensajes", func(t *testing.T) {
		sessions := newMockSessionRepo(domain.StudySession{ID: "s1", UserID: "u1"})
		messages := &mockMessageRepo{}
		svc := newTestChatService(sessions, messages, &llm.MockClient{Err: llm.ErrRateLimited}, "key")

		reply, err := svc.Chat(context.Background(), "u1", "s1", "", "hi")
		if err != nil {
			t.Fatalf("expected soft failure, got error: %v", err)
		}
		if len(messages.creates) != 2 {
			t.Fatalf("expected 2 messages persisted, got %d", len(messages.creates))
		}
		if !strings.Contains(reply.Content, "Error communicating with Gemini") {
			t.Fatalf("expected degraded error text, got: %q", reply.Content)
		}
		if messages.creates[1].Content != reply.Content {
			t.Fatalf("persisted assistant content differs from reply")
		}
	})
}

func TestChatService_ListMessages(t *testing.T) {
	t.Run("historial propio", func(t *testing.T) {
		sessions := newMockSessionRepo(domain.StudySession{ID: "s1", UserID: "u1"})
		messages := &mockMessageRepo{msgs: sessionMessages(3)}
		svc := newTestChatService(sessions, messages, nil, "")

		msgs, err := svc.ListMessages(context.Background(), "u1", "s1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(msgs) != 3 {
			t.Fatalf("expected 3 messages, got %d", len(msgs))
		}
	})

	t.Run("historial ajeno es not found", func(t *testing.T) {
		sessions := newMockSessionRepo(domain.StudySession{ID: "s1", UserID: "other"})
		svc := newTestChatService(sessions, &mockMessageRepo{}, nil, "")

		_, err := svc.ListMessages(context.Background(), "u1", "s1")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})
}
