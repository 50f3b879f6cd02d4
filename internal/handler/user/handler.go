package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	userdomain "igym-app/internal/domain/user"
	"igym-app/internal/handler/response"
	"igym-app/internal/usecase/errs"
	useruc "igym-app/internal/usecase/user"
)

// Handler обрабатывает HTTP-запросы, связанные с пользователями.
type Handler struct {
	users useruc.Service
}

// NewHandler создаёт новый UserHandler.
func NewHandler(users useruc.Service) *Handler {
	return &Handler{users: users}
}

// Create создаёт нового пользователя. Единственный маршрут мутации,
// доступный без аутентификации.
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	u, err := h.users.Create(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidPassword):
			response.ValidationError(c, []string{err.Error()})
		case errors.Is(err, errs.ErrDuplicateUser):
			response.Error(c, http.StatusConflict, "duplicate_user", err.Error(), nil)
		default:
			log.Printf("internal error in user Create: err=%v", err)
			response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, toResponse(u))
}

// FindAll возвращает всех активных пользователей.
func (h *Handler) FindAll(c *gin.Context) {
	users, err := h.users.FindAll(c.Request.Context())
	if err != nil {
		log.Printf("internal error in user FindAll: err=%v", err)
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		return
	}

	list := make([]UserResponse, 0, len(users))
	for _, u := range users {
		list = append(list, toResponse(u))
	}
	c.JSON(http.StatusOK, list)
}

// UpdateName меняет имя пользователя.
func (h *Handler) UpdateName(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_id", "Некорректный идентификатор", nil)
		return
	}

	var req UpdateUserNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	u, err := h.users.UpdateName(c.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrInvalidName):
			response.ValidationError(c, []string{err.Error()})
		case errors.Is(err, errs.ErrDuplicateUser):
			response.Error(c, http.StatusConflict, "duplicate_user", err.Error(), nil)
		case errors.Is(err, errs.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user_not_found", err.Error(), nil)
		default:
			log.Printf("internal error in user UpdateName: user_id=%s err=%v", id, err)
			response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		}
		return
	}

	c.JSON(http.StatusOK, toResponse(u))
}

// Delete выполняет каскадную инактивацию пользователя.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_id", "Некорректный идентификатор", nil)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user_not_found", err.Error(), nil)
			return
		}
		log.Printf("internal error in user Delete: user_id=%s err=%v", id, err)
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		return
	}

	c.Status(http.StatusNoContent)
}
