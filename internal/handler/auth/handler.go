package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"igym-app/internal/handler/response"
	authuc "igym-app/internal/usecase/auth"
	"igym-app/internal/usecase/errs"
)

// Handler обрабатывает HTTP-запросы аутентификации.
type Handler struct {
	auth authuc.Service
}

// NewHandler создаёт новый AuthHandler.
func NewHandler(auth authuc.Service) *Handler {
	return &Handler{auth: auth}
}

// Login выполняет вход по имени и паролю и выдаёт токен.
// Неизвестное имя и неверный пароль различаются статусами ответа.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user_not_found", err.Error(), nil)
		case errors.Is(err, errs.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "invalid_credentials", "Неверные учётные данные", nil)
		default:
			log.Printf("internal error in auth Login: err=%v", err)
			response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: result.Token, Username: result.Username})
}
