package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"igym-app/internal/handler/response"
)

// Recovery возвращает middleware для перехвата паник.
// Паника в обработчике логируется и превращается в 500 с безликим сообщением:
// детали остаются только в серверных логах.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		method := c.Request.Method
		path := c.Request.URL.Path
		clientIP := c.ClientIP()

		log.Printf("[PANIC] %s %s from %s: %v", method, path, clientIP, recovered)

		response.Error(c, http.StatusInternalServerError, "internal_error",
			"Внутренняя ошибка сервера", nil)
	})
}
