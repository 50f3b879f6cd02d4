package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindError отправляет ответ для ошибки привязки тела запроса:
// нарушение правил валидации — 422 с сообщениями по полям,
// синтаксически некорректное тело — 400.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, fieldMessage(fe))
		}
		ValidationError(c, messages)
		return
	}
	Error(c, http.StatusBadRequest, "invalid_request", "Некорректное тело запроса", err.Error())
}

// fieldMessage строит человекочитаемое сообщение для ошибки поля.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must have at least %s characters or elements", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters or elements", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
