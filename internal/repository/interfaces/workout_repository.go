package interfaces

import (
	"context"

	"github.com/google/uuid"

	domain "igym-app/internal/domain/workout"
)

// WorkoutRepository определяет контракт для работы с тренировками и их
// упражнениями на уровне хранилища.
//
// Тренировка и её упражнения сохраняются как единое целое: Create и Update
// либо записывают всё, либо ничего. Методы чтения возвращают только активные
// тренировки; список упражнений при этом загружается целиком, включая
// инактивированные — фильтрация по статусу выполняется выше.
type WorkoutRepository interface {
	// Create создает тренировку вместе со всеми её упражнениями.
	Create(ctx context.Context, workout *domain.Workout) error

	// GetByID возвращает активную тренировку по идентификатору вместе с упражнениями.
	// Возвращает (nil, ErrNotFound), если тренировка не найдена или инактивирована.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error)

	// ListByGymID возвращает активные тренировки зала вместе с упражнениями.
	ListByGymID(ctx context.Context, gymID uuid.UUID) ([]*domain.Workout, error)

	// Update сохраняет название и статус тренировки и приводит набор её
	// упражнений в хранилище в точное соответствие со списком workout.Exercises:
	// перечисленные упражнения вставляются или обновляются, отсутствующие удаляются.
	// Возвращает ErrNotFound, если тренировки нет в хранилище.
	Update(ctx context.Context, workout *domain.Workout) error

	// GetExerciseByID возвращает активное упражнение по идентификатору.
	// Возвращает (nil, ErrNotFound), если упражнение не найдено или инактивировано.
	GetExerciseByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)

	// UpdateExercise сохраняет статус упражнения.
	// Возвращает ErrNotFound, если упражнения нет в хранилище.
	UpdateExercise(ctx context.Context, exercise *domain.Exercise) error
}
