package gym

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domain "igym-app/internal/domain/gym"
	userdomain "igym-app/internal/domain/user"
	repo "igym-app/internal/repository/interfaces"
	"igym-app/internal/usecase/errs"
	workoutuc "igym-app/internal/usecase/workout"
	"igym-app/pkg/logger"
)

// Service описывает usecase-слой для работы с залами:
// создание под владельцем, переименование, чтение и каскадную инактивацию.
type Service interface {
	// Create создаёт новый зал под владельцем userID.
	// Возвращает errs.ErrUserNotFound, если владелец не существует или
	// инактивирован, и errs.ErrDuplicateGym, если у владельца уже есть
	// активный зал с таким названием.
	Create(ctx context.Context, g *domain.Gym, userID uuid.UUID) (*domain.Gym, error)

	// UpdateName меняет название зала. Совпадение с названием любого активного
	// зала того же владельца — включая собственное текущее название —
	// отклоняется с errs.ErrDuplicateGym.
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.Gym, error)

	// FindAll возвращает все активные залы.
	FindAll(ctx context.Context) ([]*domain.Gym, error)

	// FindByID возвращает активный зал или errs.ErrGymNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error)

	// FindByUserID возвращает активные залы владельца.
	// Возвращает errs.ErrUserNotFound, если владелец не существует или инактивирован.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Gym, error)

	// Delete выполняет каскадную инактивацию зала и его активных тренировок.
	// Вызов для уже инактивированного зала возвращает errs.ErrGymNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	gyms     repo.GymRepository
	users    repo.UserRepository
	workouts workoutuc.Service
	tx       repo.TxManager
	log      logger.Logger
}

// NewService создаёт новый сервис залов.
func NewService(gyms repo.GymRepository, users repo.UserRepository, workouts workoutuc.Service, tx repo.TxManager, log logger.Logger) Service {
	return &service{gyms: gyms, users: users, workouts: workouts, tx: tx, log: log}
}

// Create создаёт новый зал со статусом active под активным владельцем.
func (s *service) Create(ctx context.Context, g *domain.Gym, userID uuid.UUID) (*domain.Gym, error) {
	s.log.Info("attempting to create a new gym", map[string]any{"user_id": userID})

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		owner, err := s.findOwner(ctx, userID)
		if err != nil {
			return err
		}
		g.UserID = owner.ID

		exists, err := s.gyms.ExistsByNameAndUserID(ctx, g.Name, owner.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateGym, g.Name)
		}

		if err := s.gyms.Create(ctx, g); err != nil {
			// Гонка двух одновременных созданий разрешается ограничением БД
			if errors.Is(err, repo.ErrGymNameExists) {
				return fmt.Errorf("%w: %s", errs.ErrDuplicateGym, g.Name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("new gym created", map[string]any{"gym_id": g.ID})
	return g, nil
}

// UpdateName меняет название существующего зала.
func (s *service) UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.Gym, error) {
	s.log.Info("attempting to update gym", map[string]any{"gym_id": id})

	var updated *domain.Gym
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		g, err := s.findActive(ctx, id)
		if err != nil {
			return err
		}

		exists, err := s.gyms.ExistsByNameAndUserID(ctx, name, g.UserID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateGym, name)
		}

		g.Name = name
		if err := s.gyms.Update(ctx, g); err != nil {
			if errors.Is(err, repo.ErrGymNameExists) {
				return fmt.Errorf("%w: %s", errs.ErrDuplicateGym, name)
			}
			return err
		}
		updated = g
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("gym updated", map[string]any{"gym_id": id})
	return updated, nil
}

// FindAll возвращает все активные залы.
func (s *service) FindAll(ctx context.Context) ([]*domain.Gym, error) {
	return s.gyms.List(ctx)
}

// FindByID возвращает активный зал по идентификатору.
func (s *service) FindByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error) {
	return s.findActive(ctx, id)
}

// FindByUserID возвращает активные залы владельца.
func (s *service) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Gym, error) {
	if _, err := s.findOwner(ctx, userID); err != nil {
		return nil, err
	}
	return s.gyms.ListByUserID(ctx, userID)
}

// Delete выполняет каскадную инактивацию зала и его тренировок.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	s.log.Info("attempting to inactivate gym", map[string]any{"gym_id": id})

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		g, err := s.findActive(ctx, id)
		if err != nil {
			return err
		}

		// Каскад: инактивируем каждую ещё активную тренировку тем же путём,
		// что и при прямом удалении тренировки.
		workouts, err := s.workouts.FindByGymID(ctx, id)
		if err != nil {
			return err
		}
		for _, w := range workouts {
			if err := s.workouts.Delete(ctx, w.ID); err != nil {
				return err
			}
		}

		g.MarkInactive()
		return s.gyms.Update(ctx, g)
	})
	if err != nil {
		return err
	}

	s.log.Info("gym inactivated", map[string]any{"gym_id": id})
	return nil
}

// findActive возвращает активный зал или errs.ErrGymNotFound.
func (s *service) findActive(ctx context.Context, id uuid.UUID) (*domain.Gym, error) {
	g, err := s.gyms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.log.Warn("gym not found or inactive", map[string]any{"gym_id": id})
			return nil, fmt.Errorf("%w: id %s", errs.ErrGymNotFound, id)
		}
		return nil, err
	}
	return g, nil
}

// findOwner возвращает активного владельца или errs.ErrUserNotFound.
func (s *service) findOwner(ctx context.Context, userID uuid.UUID) (*userdomain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.log.Warn("user not found or inactive", map[string]any{"user_id": userID})
			return nil, fmt.Errorf("%w: id %s", errs.ErrUserNotFound, userID)
		}
		return nil, err
	}
	return u, nil
}
