package gym

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "igym-app/internal/domain/gym"
	"igym-app/internal/handler/response"
	"igym-app/internal/usecase/errs"
	gymuc "igym-app/internal/usecase/gym"
)

// Handler обрабатывает HTTP-запросы, связанные с залами.
type Handler struct {
	gyms gymuc.Service
}

// NewHandler создаёт новый GymHandler.
func NewHandler(gyms gymuc.Service) *Handler {
	return &Handler{gyms: gyms}
}

// Create создаёт зал под владельцем из пути.
func (h *Handler) Create(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_id", "Некорректный идентификатор", nil)
		return
	}

	var req GymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	g, err := h.gyms.Create(c.Request.Context(), domain.NewGym(req.Name), userID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user_not_found", err.Error(), nil)
		case errors.Is(err, errs.ErrDuplicateGym):
			response.Error(c, http.StatusConflict, "duplicate_gym", err.Error(), nil)
		default:
			log.Printf("internal error in gym Create: user_id=%s err=%v", userID, err)
			response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, toResponse(g))
}

// FindAll возвращает все активные залы.
func (h *Handler) FindAll(c *gin.Context) {
	gyms, err := h.gyms.FindAll(c.Request.Context())
	if err != nil {
		log.Printf("internal error in gym FindAll: err=%v", err)
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		return
	}

	c.JSON(http.StatusOK, toResponseList(gyms))
}

// FindByUser возвращает активные залы владельца из пути.
func (h *Handler) FindByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_id", "Некорректный идентификатор", nil)
		return
	}

	gyms, err := h.gyms.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user_not_found", err.Error(), nil)
			return
		}
		log.Printf("internal error in gym FindByUser: user_id=%s err=%v", userID, err)
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		return
	}

	c.JSON(http.StatusOK, toResponseList(gyms))
}

// UpdateName меняет название зала.
func (h *Handler) UpdateName(c *gin.Context) {
	id, err := uuid.Parse(c.Param("gymId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_id", "Некорректный идентификатор", nil)
		return
	}

	var req UpdateGymNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	g, err := h.gyms.UpdateName(c.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidName):
			response.ValidationError(c, []string{err.Error()})
		case errors.Is(err, errs.ErrDuplicateGym):
			response.Error(c, http.StatusConflict, "duplicate_gym", err.Error(), nil)
		case errors.Is(err, errs.ErrGymNotFound):
			response.Error(c, http.StatusNotFound, "gym_not_found", err.Error(), nil)
		default:
			log.Printf("internal error in gym UpdateName: gym_id=%s err=%v", id, err)
			response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		}
		return
	}

	c.JSON(http.StatusOK, toResponse(g))
}

// Delete выполняет каскадную инактивацию зала.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("gymId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_id", "Некорректный идентификатор", nil)
		return
	}

	if err := h.gyms.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrGymNotFound) {
			response.Error(c, http.StatusNotFound, "gym_not_found", err.Error(), nil)
			return
		}
		log.Printf("internal error in gym Delete: gym_id=%s err=%v", id, err)
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

func toResponseList(gyms []*domain.Gym) []GymResponse {
	list := make([]GymResponse, 0, len(gyms))
	for _, g := range gyms {
		list = append(list, toResponse(g))
	}
	return list
}
