package workout

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"igym-app/internal/handler/response"
	"igym-app/internal/usecase/errs"
	workoutuc "igym-app/internal/usecase/workout"
)

// Handler обрабатывает HTTP-запросы, связанные с тренировками и упражнениями.
type Handler struct {
	workouts workoutuc.Service
}

// NewHandler создаёт новый WorkoutHandler.
func NewHandler(workouts workoutuc.Service) *Handler {
	return &Handler{workouts: workouts}
}

// Create создаёт тренировку под залом из пути.
func (h *Handler) Create(c *gin.Context) {
	gymID, err := uuid.Parse(c.Param("gymId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_id", "Некорректный идентификатор", nil)
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	w, err := h.workouts.Create(c.Request.Context(), toDomain(req.Name, req.Exercises), gymID)
	if err != nil {
		if errors.Is(err, errs.ErrGymNotFound) {
			response.Error(c, http.StatusNotFound, "gym_not_found", err.Error(), nil)
			return
		}
		log.Printf("internal error in workout Create: gym_id=%s err=%v", gymID, err)
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		return
	}

	c.JSON(http.StatusCreated, toResponse(w))
}

// FindByGym возвращает активные тренировки зала из пути.
func (h *Handler) FindByGym(c *gin.Context) {
	gymID, err := uuid.Parse(c.Param("gymId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_id", "Некорректный идентификатор", nil)
		return
	}

	workouts, err := h.workouts.FindByGymID(c.Request.Context(), gymID)
	if err != nil {
		if errors.Is(err, errs.ErrGymNotFound) {
			response.Error(c, http.StatusNotFound, "gym_not_found", err.Error(), nil)
			return
		}
		log.Printf("internal error in workout FindByGym: gym_id=%s err=%v", gymID, err)
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		return
	}

	list := make([]WorkoutResponse, 0, len(workouts))
	for _, w := range workouts {
		list = append(list, toResponse(w))
	}
	c.JSON(http.StatusOK, list)
}

// Update полностью заменяет содержимое тренировки.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_id", "Некорректный идентификатор", nil)
		return
	}

	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	w, err := h.workouts.Update(c.Request.Context(), id, toDomain(req.Name, req.Exercises))
	if err != nil {
		if errors.Is(err, errs.ErrWorkoutNotFound) {
			response.Error(c, http.StatusNotFound, "workout_not_found", err.Error(), nil)
			return
		}
		log.Printf("internal error in workout Update: workout_id=%s err=%v", id, err)
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		return
	}

	c.JSON(http.StatusOK, toResponse(w))
}

// Delete инактивирует тренировку вместе с её упражнениями.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_id", "Некорректный идентификатор", nil)
		return
	}

	if err := h.workouts.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrWorkoutNotFound) {
			response.Error(c, http.StatusNotFound, "workout_not_found", err.Error(), nil)
			return
		}
		log.Printf("internal error in workout Delete: workout_id=%s err=%v", id, err)
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteExercise инактивирует одно упражнение тренировки.
func (h *Handler) DeleteExercise(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_id", "Некорректный идентификатор", nil)
		return
	}

	if err := h.workouts.DeleteExercise(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrExerciseNotFound) {
			response.Error(c, http.StatusNotFound, "exercise_not_found", err.Error(), nil)
			return
		}
		log.Printf("internal error in workout DeleteExercise: exercise_id=%s err=%v", id, err)
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		return
	}

	c.Status(http.StatusNoContent)
}
