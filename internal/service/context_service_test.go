package service

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"studyhub/internal/domain"
	"studyhub/internal/llm"
)

type mockMessageRepo struct {
	msgs    []domain.ChatMessage
	err     error
	creates []domain.ChatMessage
}

func (m *mockMessageRepo) Create(ctx context.Context, message domain.ChatMessage) error {
	if m.err != nil {
		return m.err
	}
	m.creates = append(m.creates, message)
	m.msgs = append(m.msgs, message)
	return nil
}

func (m *mockMessageRepo) ListBySessionID(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	return m.msgs, m.err
}

func (m *mockMessageRepo) ListRecentBySessionID(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	msgs := m.msgs
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func sessionMessages(n int) []domain.ChatMessage {
	now := time.Now().UTC()
	msgs := make([]domain.ChatMessage, 0, n)
	for i := 0; i < n; i++ {
		role := domain.MessageRoleUser
		if i%2 == 1 {
			role = domain.MessageRoleAssistant
		}
		msgs = append(msgs, domain.ChatMessage{
			ID:        fmt.Sprintf("m%d", i),
			SessionID: "s1",
			Role:      role,
			Content:   fmt.Sprintf("msg%d", i),
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		})
	}
	return msgs
}

func TestBasicContextService_BuildContext(t *testing.T) {
	t.Run("preambulo fijo siempre al frente", func(t *testing.T) {
		svc := NewBasicContextService(&mockMessageRepo{})

		turns, err := svc.BuildContext(context.Background(), "s1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(turns) != 2 {
			t.Fatalf("expected only preamble, got %d turns", len(turns))
		}
		if turns[0].Role != llm.WireRoleUser || turns[0].Text != systemInstruction {
			t.Fatalf("unexpected first turn: %+v", turns[0])
		}
		if turns[1].Role != llm.WireRoleModel || turns[1].Text != systemAck {
			t.Fatalf("unexpected second turn: %+v", turns[1])
		}
	})

	t.Run("tamano es 2 mas min(M, 20)", func(t *testing.T) {
		for _, m := range []int{1, 5, 19, 20, 21, 40} {
			svc := NewBasicContextService(&mockMessageRepo{msgs: sessionMessages(m)})
			turns, err := svc.BuildContext(context.Background(), "s1")
			if err != nil {
				t.Fatalf("unexpected error for M=%d: %v", m, err)
			}
			want := 2 + m
			if m > 20 {
				want = 22
			}
			if len(turns) != want {
				t.Fatalf("M=%d: expected %d turns, got %d", m, want, len(turns))
			}
		}
	})

	t.Run("25 mensajes recorta a los ultimos 20", func(t *testing.T) {
		svc := NewBasicContextService(&mockMessageRepo{msgs: sessionMessages(25)})

		turns, err := svc.BuildContext(context.Background(), "s1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(turns) != 22 {
			t.Fatalf("expected 22 turns, got %d", len(turns))
		}
		// La ventana arranca en el sexto mensaje mas viejo (indice 5).
		if turns[2].Text != "msg5" {
			t.Fatalf("expected window to start at msg5, got %q", turns[2].Text)
		}
		if turns[len(turns)-1].Text != "msg24" {
			t.Fatalf("expected window to end at msg24, got %q", turns[len(turns)-1].Text)
		}
	})

	t.Run("mapeo de roles al contrato del proveedor", func(t *testing.T) {
		svc := NewBasicContextService(&mockMessageRepo{msgs: sessionMessages(4)})

		turns, err := svc.BuildContext(context.Background(), "s1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		wantRoles := []string{llm.WireRoleUser, llm.WireRoleModel, llm.WireRoleUser, llm.WireRoleModel, llm.WireRoleUser, llm.WireRoleModel}
		for i, turn := range turns {
			if turn.Role != wantRoles[i] {
				t.Fatalf("turn %d: expected role %q, got %q", i, wantRoles[i], turn.Role)
			}
		}
	})

	t.Run("lectura idempotente", func(t *testing.T) {
		svc := NewBasicContextService(&mockMessageRepo{msgs: sessionMessages(7)})

		first, err := svc.BuildContext(context.Background(), "s1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.BuildContext(context.Background(), "s1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("expected identical sequences, got %+v vs %+v", first, second)
		}
	})
}

func TestWireRole(t *testing.T) {
	if got := wireRole(domain.MessageRoleUser); got != llm.WireRoleUser {
		t.Fatalf("expected user role, got %q", got)
	}
	if got := wireRole(domain.MessageRoleAssistant); got != llm.WireRoleModel {
		t.Fatalf("expected model role, got %q", got)
	}
	// Cualquier rol desconocido se trata como turno del modelo.
	if got := wireRole(domain.MessageRole("system")); got != llm.WireRoleModel {
		t.Fatalf("expected model role for unknown, got %q", got)
	}
}
