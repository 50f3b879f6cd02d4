package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"igym-app/internal/domain/status"
)

// Ограничения на имя пользователя. Дублируют binding-теги DTO намеренно:
// операция обновления имени может вызываться в обход транспортного слоя.
const (
	NameMinLen = 3
	NameMaxLen = 50
)

// ErrInvalidName возвращается, когда имя не проходит синтаксическую проверку.
var ErrInvalidName = errors.New("invalid user name")

// User представляет доменную модель пользователя.
//
// Модель описывает бизнес‑сущность и не зависит от деталей транспорта (HTTP)
// и конкретного представления в БД. Пароль хранится только в виде bcrypt-хэша
// и никогда не попадает в ответы API.
type User struct {
	ID           uuid.UUID     // Уникальный идентификатор (присваивается при сохранении)
	Name         string        // Имя (уникально среди активных пользователей)
	PasswordHash string        // Хэш пароля
	Status       status.Status // Статус жизненного цикла (active/inactive)
	UpdatedAt    time.Time     // Время последнего обновления (поддерживается хранилищем)
}

// NewUser — фабрика для создания нового пользователя на доменном уровне.
// Хеширование пароля выполняется на уровне usecase до вызова этой функции.
// ID остаётся нулевым: его присваивает хранилище при первом сохранении.
func NewUser(name, passwordHash string) *User {
	return &User{
		Name:         name,
		PasswordHash: passwordHash,
		Status:       status.Active,
	}
}

// IsActive возвращает true, если пользователь не был мягко удалён.
func (u *User) IsActive() bool {
	return u.Status == status.Active
}

// MarkInactive помечает пользователя как логически удалённого.
func (u *User) MarkInactive() {
	u.Status = status.Inactive
}

// ValidateName проверяет синтаксическую корректность имени пользователя:
// непустое после обрезки пробелов и длиной от NameMinLen до NameMaxLen символов.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be blank", ErrInvalidName)
	}
	if n := len([]rune(name)); n < NameMinLen || n > NameMaxLen {
		return fmt.Errorf("%w: name must be between %d and %d characters", ErrInvalidName, NameMinLen, NameMaxLen)
	}
	return nil
}
