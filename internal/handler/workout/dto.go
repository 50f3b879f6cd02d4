package workout

import (
	"time"

	"github.com/google/uuid"

	domain "igym-app/internal/domain/workout"
)

// ExerciseRequest описывает одно упражнение в теле запроса.
// Идентификатор опционален: при обновлении он позволяет сохранить
// существующую строку, при создании игнорируется.
type ExerciseRequest struct {
	ID     string  `json:"id"`
	Name   string  `json:"name" binding:"required,min=3,max=50"`
	Weight float64 `json:"weight" binding:"gte=0"`
	Reps   int     `json:"reps" binding:"required,gte=1"`
	Sets   int     `json:"sets" binding:"required,gte=1"`
	Note   string  `json:"note"`
}

// WorkoutRequest описывает тело запроса создания тренировки.
// Тренировка без упражнений не принимается.
type WorkoutRequest struct {
	Name      string            `json:"name" binding:"required,min=3,max=50"`
	Exercises []ExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
}

// UpdateWorkoutRequest описывает тело запроса полного обновления тренировки.
// Присланный список упражнений полностью заменяет существующий.
type UpdateWorkoutRequest struct {
	Name      string            `json:"name" binding:"required,min=3,max=50"`
	Exercises []ExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
}

// ExerciseResponse описывает представление упражнения в API.
type ExerciseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Weight    float64   `json:"weight"`
	Reps      int       `json:"reps"`
	Sets      int       `json:"sets"`
	Note      string    `json:"note,omitempty"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkoutResponse описывает представление тренировки в API.
// Наружу отдаются только активные упражнения.
type WorkoutResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	GymID     string             `json:"gym_id"`
	Status    string             `json:"status"`
	Exercises []ExerciseResponse `json:"exercises"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// toDomain маппит запрос в доменную модель тренировки.
// Некорректный идентификатор упражнения трактуется как отсутствующий.
func toDomain(name string, exercises []ExerciseRequest) *domain.Workout {
	list := make([]*domain.Exercise, 0, len(exercises))
	for _, e := range exercises {
		ex := &domain.Exercise{
			Name:   e.Name,
			Weight: e.Weight,
			Reps:   e.Reps,
			Sets:   e.Sets,
			Note:   e.Note,
		}
		if id, err := uuid.Parse(e.ID); err == nil {
			ex.ID = id
		}
		list = append(list, ex)
	}
	return domain.NewWorkout(name, list)
}

// toResponse маппит доменную модель в DTO, отфильтровывая
// инактивированные упражнения.
func toResponse(w *domain.Workout) WorkoutResponse {
	active := w.ActiveExercises()
	exercises := make([]ExerciseResponse, 0, len(active))
	for _, e := range active {
		exercises = append(exercises, ExerciseResponse{
			ID:        e.ID.String(),
			Name:      e.Name,
			Weight:    e.Weight,
			Reps:      e.Reps,
			Sets:      e.Sets,
			Note:      e.Note,
			Status:    string(e.Status),
			UpdatedAt: e.UpdatedAt,
		})
	}
	return WorkoutResponse{
		ID:        w.ID.String(),
		Name:      w.Name,
		GymID:     w.GymID.String(),
		Status:    string(w.Status),
		Exercises: exercises,
		UpdatedAt: w.UpdatedAt,
	}
}
