package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"igym-app/internal/handler/response"
	repo "igym-app/internal/repository/interfaces"
	jwtsvc "igym-app/pkg/jwt"
)

const (
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
)

// PrincipalResolver резолвит принципала по идентификатору из токена.
// Инактивированный пользователь не резолвится: его токены ничего не дают.
type PrincipalResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (principal *ResolvedPrincipal, err error)
}

// ResolvedPrincipal — аутентифицированная личность, привязанная к запросу.
type ResolvedPrincipal struct {
	ID   uuid.UUID
	Name string
}

// userRepoResolver адаптирует repo.UserRepository к PrincipalResolver.
type userRepoResolver struct {
	users repo.UserRepository
}

// NewPrincipalResolver создаёт резолвер принципалов поверх репозитория пользователей.
func NewPrincipalResolver(users repo.UserRepository) PrincipalResolver {
	return &userRepoResolver{users: users}
}

func (r *userRepoResolver) GetByID(ctx context.Context, id uuid.UUID) (*ResolvedPrincipal, error) {
	u, err := r.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ResolvedPrincipal{ID: u.ID, Name: u.Name}, nil
}

// Authenticate возвращает middleware, устанавливающее контекст доступа запроса.
//
// Разбирает заголовок Authorization: Bearer <token>, резолвит субъекта токена
// в принципала и прикрепляет его к контексту Gin. Любой сбой на любом шаге —
// отсутствующий или чужой заголовок, битый токен, неизвестный субъект —
// деградирует до анонимного запроса: ошибка логируется и проглатывается,
// цепочка обработки продолжается всегда. Отказ в доступе — задача RequireAuth,
// а не этого middleware.
func Authenticate(jwtService jwtsvc.Service, principals PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		attachPrincipal(c, jwtService, principals)
		c.Next()
	}
}

// attachPrincipal выполняет весь разбор токена и резолв принципала.
// Никогда не прерывает запрос: любой сбой оставляет запрос анонимным.
func attachPrincipal(c *gin.Context, jwtService jwtsvc.Service, principals PrincipalResolver) {
	defer func() {
		// Страховка: даже паника в разборе не должна уронить запрос
		if r := recover(); r != nil {
			log.Printf("cannot set user authentication: panic=%v", r)
		}
	}()

	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	claims, err := jwtService.ParseToken(tokenString)
	if err != nil {
		log.Printf("cannot set user authentication: err=%v", err)
		return
	}

	userID, err := claims.UserID()
	if err != nil {
		log.Printf("cannot set user authentication: bad subject err=%v", err)
		return
	}

	principal, err := principals.GetByID(c.Request.Context(), userID)
	if err != nil {
		// Неизвестный или инактивированный субъект — просто аноним
		log.Printf("cannot set user authentication: principal not resolved user_id=%s err=%v", userID, err)
		return
	}

	// Не перетираем уже установленного принципала
	if c.GetString(ContextUserIDKey) == "" {
		c.Set(ContextUserIDKey, principal.ID.String())
		c.Set(ContextUsernameKey, principal.Name)
	}
}

// RequireAuth возвращает middleware-шлюз авторизации: маршруты за ним
// доступны только запросам с установленным принципалом. Анонимные запросы
// получают 401 до того, как доберутся до бизнес-логики.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserIDKey) == "" {
			log.Printf("unauthorized request: path=%s", c.Request.URL.Path)
			response.Error(c, http.StatusUnauthorized, "unauthorized", "Требуется аутентификация", nil)
			return
		}
		c.Next()
	}
}
