package workout

import (
	"time"

	"github.com/google/uuid"

	"igym-app/internal/domain/status"
)

// Workout представляет тренировку, принадлежащую залу.
//
// Ссылка на зал неизменяема после создания. При создании тренировка обязана
// содержать хотя бы одно упражнение; при каскадной инактивации это требование
// повторно не проверяется.
type Workout struct {
	ID        uuid.UUID     // Уникальный идентификатор (присваивается при сохранении)
	Name      string        // Название тренировки (свободный текст)
	GymID     uuid.UUID     // Зал (неизменяем после создания)
	Status    status.Status // Статус жизненного цикла
	Exercises []*Exercise   // Упражнения тренировки
	UpdatedAt time.Time     // Время последнего обновления (поддерживается хранилищем)
}

// Exercise представляет упражнение внутри тренировки.
type Exercise struct {
	ID        uuid.UUID     // Уникальный идентификатор (присваивается при сохранении)
	Name      string        // Название упражнения
	Weight    float64       // Вес, >= 0
	Reps      int           // Количество повторений, >= 1
	Sets      int           // Количество подходов, >= 1
	Note      string        // Свободный комментарий (опционально)
	WorkoutID uuid.UUID     // Тренировка (неизменяема после создания)
	Status    status.Status // Статус жизненного цикла
	UpdatedAt time.Time     // Время последнего обновления (поддерживается хранилищем)
}

// NewWorkout — фабрика для создания новой тренировки с упражнениями.
// Привязка к залу и обратные ссылки упражнений выставляются на уровне usecase.
func NewWorkout(name string, exercises []*Exercise) *Workout {
	return &Workout{
		Name:      name,
		Status:    status.Active,
		Exercises: exercises,
	}
}

// IsActive возвращает true, если тренировка не была мягко удалена.
func (w *Workout) IsActive() bool {
	return w.Status == status.Active
}

// MarkInactive помечает тренировку как логически удалённую.
func (w *Workout) MarkInactive() {
	w.Status = status.Inactive
}

// ActiveExercises возвращает только активные упражнения тренировки.
// В хранилище у активной тренировки могут оставаться инактивированные
// упражнения; наружу они никогда не отдаются.
func (w *Workout) ActiveExercises() []*Exercise {
	active := make([]*Exercise, 0, len(w.Exercises))
	for _, e := range w.Exercises {
		if e.Status == status.Active {
			active = append(active, e)
		}
	}
	return active
}

// IsActive возвращает true, если упражнение не было мягко удалено.
func (e *Exercise) IsActive() bool {
	return e.Status == status.Active
}

// MarkInactive помечает упражнение как логически удалённое.
func (e *Exercise) MarkInactive() {
	e.Status = status.Inactive
}
