package service

import (
	"context"
	"fmt"
	"strings"

	"studyhub/internal/domain"
	"studyhub/internal/llm"
	"studyhub/internal/repository"
)

// contextWindowSize acota el prompt sin importar el largo de la conversacion.
const contextWindowSize = 20

// Preambulo fijo: no son mensajes persistidos, siempre encabezan el contexto.
const (
	systemInstruction = "You are an elite AI Study Assistant. Your goal is to help students learn faster, explain complex topics simply, and provide study plans. Be encouraging, concise, and professional."
	systemAck         = "Understood. I am ready to assist with any study inquiries."
)

// ContextService define contrato para reconstruir el contexto conversacional.
type ContextService interface {
	BuildContext(ctx context.Context, sessionID string) ([]llm.Turn, error)
}

// BasicContextService arma el preambulo fijo mas la ventana de mensajes recientes.
// Es una lectura pura: dos llamadas sin escrituras intermedias dan lo mismo.
type BasicContextService struct {
	messageRepo repository.MessageRepository
}

func NewBasicContextService(messageRepo repository.MessageRepository) *BasicContextService {
	return &BasicContextService{messageRepo: messageRepo}
}

func (s *BasicContextService) BuildContext(ctx context.Context, sessionID string) ([]llm.Turn, error) {
	turns := []llm.Turn{
		{Role: llm.WireRoleUser, Text: systemInstruction},
		{Role: llm.WireRoleModel, Text: systemAck},
	}

	if strings.TrimSpace(sessionID) == "" {
		return turns, nil
	}

	messages, err := s.messageRepo.ListRecentBySessionID(ctx, sessionID, contextWindowSize)
	if err != nil {
		return nil, fmt.Errorf("list recent messages: %w", err)
	}

	for _, m := range messages {
		turns = append(turns, llm.Turn{Role: wireRole(m.Role), Text: m.Content})
	}
	return turns, nil
}

// wireRole mapea el rol almacenado al rol del proveedor. Cualquier rol que no
// sea "user" se trata como turno del modelo; hoy solo existen dos roles.
func wireRole(role domain.MessageRole) string {
	if role == domain.MessageRoleUser {
		return llm.WireRoleUser
	}
	return llm.WireRoleModel
}
