package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"igym-app/internal/config"
)

// Claims описывает JWT-пейлоад токена доступа.
// Subject содержит идентификатор пользователя, username — отдельный клейм.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Service инкапсулирует операции по генерации и валидации JWT-токенов.
// Схема stateless: валидность — чистая функция подписи и срока жизни,
// никакого серверного состояния и списков отзыва.
type Service interface {
	GenerateToken(userID uuid.UUID, username string) (string, error)
	ParseToken(tokenString string) (*Claims, error)
	ValidateToken(tokenString string) bool
}

type service struct {
	cfg *config.JWTConfig
}

// NewService создаёт JWT-сервис на основе конфигурации.
func NewService(cfg *config.JWTConfig) Service {
	return &service{cfg: cfg}
}

// GenerateToken генерирует подписанный токен для аутентифицированного пользователя.
// Срок жизни — время выпуска плюс настроенный TTL.
func (s *service) GenerateToken(userID uuid.UUID, username string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// ParseToken парсит и валидирует токен. Любая ошибка структуры, подписи
// или истёкший срок жизни приводит к ошибке — токен отклоняется.
func (s *service) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Дополнительная защита: убеждаемся, что метод подписи ожидаемый
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	// Дополнительная проверка issuer при необходимости
	if claims.Issuer != "" && s.cfg.Issuer != "" && claims.Issuer != s.cfg.Issuer {
		return nil, jwt.ErrTokenInvalidIssuer
	}

	return claims, nil
}

// ValidateToken возвращает true только для структурно корректного,
// правильно подписанного и не истёкшего токена.
func (s *service) ValidateToken(tokenString string) bool {
	_, err := s.ParseToken(tokenString)
	return err == nil
}

// UserID извлекает идентификатор пользователя из клеймов.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
