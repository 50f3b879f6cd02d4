package workout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	gymdomain "igym-app/internal/domain/gym"
	"igym-app/internal/domain/status"
	domain "igym-app/internal/domain/workout"
	repo "igym-app/internal/repository/interfaces"
	"igym-app/internal/usecase/errs"
	"igym-app/pkg/logger"
)

// Service описывает usecase-слой для работы с тренировками и упражнениями.
type Service interface {
	// Create создаёт тренировку с упражнениями под активным залом gymID.
	// Каждому упражнению проставляется обратная ссылка на тренировку;
	// тренировка и упражнения сохраняются как единое целое.
	// Возвращает errs.ErrGymNotFound, если зал не существует или инактивирован.
	Create(ctx context.Context, w *domain.Workout, gymID uuid.UUID) (*domain.Workout, error)

	// FindByID возвращает активную тренировку; список упражнений
	// отфильтрован до активных. Иначе errs.ErrWorkoutNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error)

	// FindByGymID возвращает активные тренировки зала; списки упражнений
	// отфильтрованы до активных. Возвращает errs.ErrGymNotFound, если зал
	// не существует или инактивирован.
	FindByGymID(ctx context.Context, gymID uuid.UUID) ([]*domain.Workout, error)

	// Update переписывает название тренировки и полностью заменяет список
	// упражнений: каждое упражнение из payload перепривязывается к этой
	// тренировке и принудительно переводится в active независимо от статуса,
	// присланного клиентом; статус самой тренировки также принудительно active.
	// Упражнения, отсутствующие в новом списке, выбывают из коллекции.
	// Инактивированную тренировку оживить этим путём нельзя —
	// операция возвращает errs.ErrWorkoutNotFound.
	Update(ctx context.Context, id uuid.UUID, updated *domain.Workout) (*domain.Workout, error)

	// Delete инактивирует тренировку и каждое её ещё активное упражнение.
	// Вызов для уже инактивированной тренировки возвращает errs.ErrWorkoutNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExercise инактивирует одно упражнение.
	// Вызов для несуществующего или уже инактивированного упражнения
	// возвращает errs.ErrExerciseNotFound.
	DeleteExercise(ctx context.Context, id uuid.UUID) error
}

type service struct {
	workouts repo.WorkoutRepository
	gyms     repo.GymRepository
	tx       repo.TxManager
	log      logger.Logger
}

// NewService создаёт новый сервис тренировок.
func NewService(workouts repo.WorkoutRepository, gyms repo.GymRepository, tx repo.TxManager, log logger.Logger) Service {
	return &service{workouts: workouts, gyms: gyms, tx: tx, log: log}
}

// Create создаёт тренировку с упражнениями под активным залом.
func (s *service) Create(ctx context.Context, w *domain.Workout, gymID uuid.UUID) (*domain.Workout, error) {
	s.log.Info("attempting to create a new workout", map[string]any{"gym_id": gymID})

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		gym, err := s.findGym(ctx, gymID)
		if err != nil {
			return err
		}
		w.GymID = gym.ID

		// Простая бухгалтерия: обратные ссылки упражнений на тренировку.
		// Идентификатор тренировки проставит репозиторий при сохранении.
		for _, e := range w.Exercises {
			e.WorkoutID = w.ID
			e.Status = status.Active
		}

		return s.workouts.Create(ctx, w)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("new workout created", map[string]any{"workout_id": w.ID})
	return w, nil
}

// FindByID возвращает активную тренировку с активными упражнениями.
func (s *service) FindByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error) {
	w, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	w.Exercises = w.ActiveExercises()
	return w, nil
}

// FindByGymID возвращает активные тренировки зала.
// У активной тренировки в хранилище могут оставаться инактивированные
// упражнения — наружу отдаётся только активное подмножество.
func (s *service) FindByGymID(ctx context.Context, gymID uuid.UUID) ([]*domain.Workout, error) {
	if _, err := s.findGym(ctx, gymID); err != nil {
		return nil, err
	}

	workouts, err := s.workouts.ListByGymID(ctx, gymID)
	if err != nil {
		return nil, err
	}
	for _, w := range workouts {
		w.Exercises = w.ActiveExercises()
	}
	return workouts, nil
}

// Update полностью заменяет изменяемое содержимое тренировки.
// Канал обновления никогда не может использоваться для инактивации:
// статусы из payload игнорируются и принудительно выставляются в active.
func (s *service) Update(ctx context.Context, id uuid.UUID, updated *domain.Workout) (*domain.Workout, error) {
	s.log.Info("attempting to update workout", map[string]any{"workout_id": id})

	var result *domain.Workout
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		existing, err := s.findActive(ctx, id)
		if err != nil {
			return err
		}

		existing.Name = updated.Name
		existing.Status = status.Active

		exercises := updated.Exercises
		if exercises == nil {
			exercises = []*domain.Exercise{}
		}
		for _, e := range exercises {
			e.WorkoutID = existing.ID
			e.Status = status.Active
		}
		existing.Exercises = exercises

		if err := s.workouts.Update(ctx, existing); err != nil {
			return err
		}
		result = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("workout updated", map[string]any{"workout_id": id})
	return result, nil
}

// Delete инактивирует тренировку и её активные упражнения.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	s.log.Info("attempting to inactivate workout", map[string]any{"workout_id": id})

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		w, err := s.findActive(ctx, id)
		if err != nil {
			return err
		}

		// Идемпотентно по упражнениям: уже инактивированные не трогаем.
		for _, e := range w.Exercises {
			if e.IsActive() {
				e.MarkInactive()
				s.log.Info("exercise inactivated", map[string]any{"exercise_id": e.ID})
			}
		}

		w.MarkInactive()
		return s.workouts.Update(ctx, w)
	})
	if err != nil {
		return err
	}

	s.log.Info("workout inactivated", map[string]any{"workout_id": id})
	return nil
}

// DeleteExercise инактивирует одно упражнение.
func (s *service) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	s.log.Info("attempting to inactivate exercise", map[string]any{"exercise_id": id})

	e, err := s.workouts.GetExerciseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.log.Warn("exercise not found or inactive", map[string]any{"exercise_id": id})
			return fmt.Errorf("%w: id %s", errs.ErrExerciseNotFound, id)
		}
		return err
	}

	e.MarkInactive()
	if err := s.workouts.UpdateExercise(ctx, e); err != nil {
		return err
	}

	s.log.Info("exercise inactivated", map[string]any{"exercise_id": id})
	return nil
}

// findActive возвращает активную тренировку или errs.ErrWorkoutNotFound.
func (s *service) findActive(ctx context.Context, id uuid.UUID) (*domain.Workout, error) {
	w, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.log.Warn("workout not found or inactive", map[string]any{"workout_id": id})
			return nil, fmt.Errorf("%w: id %s", errs.ErrWorkoutNotFound, id)
		}
		return nil, err
	}
	return w, nil
}

// findGym возвращает активный зал или errs.ErrGymNotFound: создать тренировку
// можно только под существующим и активным залом.
func (s *service) findGym(ctx context.Context, gymID uuid.UUID) (*gymdomain.Gym, error) {
	g, err := s.gyms.GetByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.log.Warn("gym not found or inactive", map[string]any{"gym_id": gymID})
			return nil, fmt.Errorf("%w: id %s", errs.ErrGymNotFound, gymID)
		}
		return nil, err
	}
	return g, nil
}
