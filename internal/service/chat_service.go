package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"studyhub/internal/domain"
	"studyhub/internal/repository"
)

const defaultSessionTopic = "General Study"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyMessage    = errors.New("message text required")
)

// ChatService orquesta un turno de chat: resuelve la sesion, persiste el
// mensaje del usuario, arma el contexto, genera la respuesta y la persiste.
type ChatService struct {
	logger      *zap.Logger
	sessionRepo repository.SessionRepository
	messageRepo repository.MessageRepository
	contextSvc  ContextService
	generation  *GenerationService
}

func NewChatService(
	logger *zap.Logger,
	sessionRepo repository.SessionRepository,
	messageRepo repository.MessageRepository,
	contextSvc ContextService,
	generation *GenerationService,
) *ChatService {
	return &ChatService{
		logger:      logger,
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		contextSvc:  contextSvc,
		generation:  generation,
	}
}

// Chat procesa un turno para el usuario autenticado. Con sessionID vacio crea
// una sesion nueva; con sessionID ajeno o inexistente devuelve
// ErrSessionNotFound sin escribir nada. En un turno exitoso quedan
// persistidos exactamente dos mensajes: el del usuario y el del asistente
// (aunque la generacion haya degradado a texto de error).
func (s *ChatService) Chat(ctx context.Context, userID, sessionID, topic, text string) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, ErrEmptyMessage
	}

	resolvedID, err := s.resolveSession(ctx, userID, sessionID, topic)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	userMsg := domain.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: resolvedID,
		Role:      domain.MessageRoleUser,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messageRepo.Create(ctx, userMsg); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("persist user message: %w", err)
	}

	turns, err := s.contextSvc.BuildContext(ctx, resolvedID)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("build context: %w", err)
	}

	reply := s.generation.Generate(ctx, turns)

	aiMsg := domain.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: resolvedID,
		Role:      domain.MessageRoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messageRepo.Create(ctx, aiMsg); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("persist assistant message: %w", err)
	}

	return aiMsg, nil
}

// ListSessions devuelve las sesiones del usuario, mas reciente primero.
func (s *ChatService) ListSessions(ctx context.Context, userID string) ([]domain.StudySession, error) {
	return s.sessionRepo.ListByUserID(ctx, userID)
}

// ListMessages devuelve el historial completo de una sesion propia.
func (s *ChatService) ListMessages(ctx context.Context, userID, sessionID string) ([]domain.ChatMessage, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return s.messageRepo.ListBySessionID(ctx, sessionID)
}

func (s *ChatService) resolveSession(ctx context.Context, userID, sessionID, topic string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			topic = defaultSessionTopic
		}
		session := domain.StudySession{
			ID:        uuid.NewString(),
			UserID:    userID,
			Topic:     topic,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return "", fmt.Errorf("create session: %w", err)
		}
		s.logger.Info("session created",
			zap.String("session_id", session.ID),
			zap.String("topic", session.Topic),
		)
		return session.ID, nil
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("get session: %w", err)
	}
	// Una sesion ajena se rechaza igual que una inexistente.
	if session.UserID != userID {
		return "", ErrSessionNotFound
	}
	return session.ID, nil
}
