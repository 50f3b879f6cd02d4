package auth

import (
	"context"
	"errors"
	"fmt"

	repo "igym-app/internal/repository/interfaces"
	"igym-app/internal/usecase/errs"
	jwtsvc "igym-app/pkg/jwt"
	"igym-app/pkg/logger"
	"igym-app/pkg/password"
)

// LoginResult — результат успешной аутентификации.
type LoginResult struct {
	Token    string
	Username string
}

// Service описывает usecase-слой аутентификации по имени и паролю.
// Хранилищем учётных данных служит таблица пользователей: пароль
// сверяется с bcrypt-хэшем, по результату выпускается stateless-токен.
type Service interface {
	// Login выполняет вход по имени/паролю.
	// Возвращает errs.ErrUserNotFound, если активного пользователя с таким
	// именем нет, и errs.ErrInvalidCredentials при неверном пароле.
	Login(ctx context.Context, name, rawPassword string) (*LoginResult, error)
}

type service struct {
	users repo.UserRepository
	jwt   jwtsvc.Service
	log   logger.Logger
}

// NewService создаёт новый auth usecase-сервис.
func NewService(users repo.UserRepository, jwt jwtsvc.Service, log logger.Logger) Service {
	return &service{users: users, jwt: jwt, log: log}
}

// Login аутентифицирует пользователя и выпускает токен.
func (s *service) Login(ctx context.Context, name, rawPassword string) (*LoginResult, error) {
	s.log.Info("authenticating user", map[string]any{"name": name})

	u, err := s.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: name %s", errs.ErrUserNotFound, name)
		}
		return nil, err
	}

	if err := password.Compare(u.PasswordHash, rawPassword); err != nil {
		s.log.Warn("authentication failed", map[string]any{"name": name})
		return nil, errs.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, u.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Info("user authenticated", map[string]any{"user_id": u.ID})
	return &LoginResult{Token: token, Username: u.Name}, nil
}
