package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domain "igym-app/internal/domain/user"
	repo "igym-app/internal/repository/interfaces"
	gymuc "igym-app/internal/usecase/gym"
	"igym-app/internal/usecase/errs"
	"igym-app/pkg/logger"
	"igym-app/pkg/password"
)

// Границы длины пароля (проверяются до хеширования).
const (
	passwordMinLen = 6
	passwordMaxLen = 20
)

// Service описывает usecase-слой для работы с пользователями:
// создание, переименование, чтение и каскадную инактивацию.
type Service interface {
	// Create создаёт нового пользователя с паролем rawPassword.
	// Возвращает errs.ErrInvalidPassword при некорректной длине пароля и
	// errs.ErrDuplicateUser, если активный пользователь с таким именем уже есть.
	Create(ctx context.Context, name, rawPassword string) (*domain.User, error)

	// UpdateName меняет имя пользователя. Повторно выполняет синтаксическую
	// валидацию имени независимо от транспортного слоя.
	// Совпадение с именем любого активного пользователя — включая текущее имя
	// самой сущности — отклоняется с errs.ErrDuplicateUser.
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.User, error)

	// FindAll возвращает всех активных пользователей.
	FindAll(ctx context.Context) ([]*domain.User, error)

	// FindByID возвращает активного пользователя или errs.ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// Delete выполняет каскадную инактивацию: сначала все активные залы
	// пользователя (вместе с их тренировками и упражнениями), затем сам
	// пользователь. Повторный вызов возвращает errs.ErrUserNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	users repo.UserRepository
	gyms  gymuc.Service
	tx    repo.TxManager
	log   logger.Logger
}

// NewService создаёт новый сервис пользователей.
func NewService(users repo.UserRepository, gyms gymuc.Service, tx repo.TxManager, log logger.Logger) Service {
	return &service{users: users, gyms: gyms, tx: tx, log: log}
}

// Create создаёт нового пользователя со статусом active.
func (s *service) Create(ctx context.Context, name, rawPassword string) (*domain.User, error) {
	s.log.Info("attempting to create a new user", map[string]any{"name": name})

	if n := len(rawPassword); n < passwordMinLen || n > passwordMaxLen {
		return nil, errs.ErrInvalidPassword
	}

	var created *domain.User
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		exists, err := s.users.ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateUser, name)
		}

		hash, err := password.Hash(rawPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		created = domain.NewUser(name, hash)
		if err := s.users.Create(ctx, created); err != nil {
			// Гонка двух одновременных созданий разрешается ограничением БД
			if errors.Is(err, repo.ErrUserNameExists) {
				return fmt.Errorf("%w: %s", errs.ErrDuplicateUser, name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("new user created", map[string]any{"user_id": created.ID})
	return created, nil
}

// UpdateName меняет имя существующего пользователя.
func (s *service) UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.User, error) {
	s.log.Info("attempting to update user", map[string]any{"user_id": id})

	// Синтаксическая валидация дублирует транспортный слой намеренно:
	// этот путь достижим и без него.
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	var updated *domain.User
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		u, err := s.findActive(ctx, id)
		if err != nil {
			return err
		}

		exists, err := s.users.ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateUser, name)
		}

		u.Name = name
		if err := s.users.Update(ctx, u); err != nil {
			if errors.Is(err, repo.ErrUserNameExists) {
				return fmt.Errorf("%w: %s", errs.ErrDuplicateUser, name)
			}
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user updated", map[string]any{"user_id": id})
	return updated, nil
}

// FindAll возвращает всех активных пользователей.
func (s *service) FindAll(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// FindByID возвращает активного пользователя по идентификатору.
func (s *service) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.findActive(ctx, id)
}

// Delete выполняет каскадную инактивацию пользователя и всех его залов.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	s.log.Info("attempting to inactivate user", map[string]any{"user_id": id})

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		u, err := s.findActive(ctx, id)
		if err != nil {
			return err
		}

		// Каскад: инактивируем каждый ещё активный зал.
		// Уже инактивированные поддеревья репозиторий не возвращает,
		// поэтому каскад на них не срабатывает повторно.
		gyms, err := s.gyms.FindByUserID(ctx, id)
		if err != nil {
			return err
		}
		for _, g := range gyms {
			if err := s.gyms.Delete(ctx, g.ID); err != nil {
				return err
			}
		}

		u.MarkInactive()
		return s.users.Update(ctx, u)
	})
	if err != nil {
		return err
	}

	s.log.Info("user inactivated", map[string]any{"user_id": id})
	return nil
}

// findActive возвращает активного пользователя или errs.ErrUserNotFound.
func (s *service) findActive(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.log.Warn("user not found or inactive", map[string]any{"user_id": id})
			return nil, fmt.Errorf("%w: id %s", errs.ErrUserNotFound, id)
		}
		return nil, err
	}
	return u, nil
}
