package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"studyhub/internal/domain"
	"studyhub/internal/repository"
)

// UserService coordina reglas de negocio para usuarios.
type UserService struct {
	logger       *zap.Logger
	users        repository.UserRepository
	loginLimiter LoginRateLimiter
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username taken")
	ErrEmailTaken         = errors.New("email taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid input")
	ErrRateLimited        = errors.New("rate limited")
	ErrUserInactive       = errors.New("user inactive")
)

const loginWindow = 10 * time.Minute

func NewUserService(logger *zap.Logger, users repository.UserRepository, loginLimiter LoginRateLimiter) *UserService {
	if loginLimiter == nil {
		loginLimiter = NewLoginRateLimiter(loginWindow, 10)
	}
	return &UserService{
		logger:       logger,
		users:        users,
		loginLimiter: loginLimiter,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	username := strings.TrimSpace(input.Username)
	emailAddr := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)
	if username == "" || emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidInput
	}

	role := domain.UserRole(strings.ToLower(strings.TrimSpace(input.Role)))
	if role == "" {
		role = domain.UserRoleStudent
	}
	if !role.IsValid() {
		return domain.User{}, ErrInvalidRole
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	if _, err := s.users.GetByEmail(ctx, emailAddr); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        emailAddr,
		PasswordHash: string(hashBytes),
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	if s.loginLimiter != nil && !s.loginLimiter.Allow(username) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return domain.User{}, ErrUserInactive
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func normalizeEmail(emailAddr string) string {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if !strings.Contains(emailAddr, "@") {
		return ""
	}
	return emailAddr
}
