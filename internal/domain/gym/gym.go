package gym

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"igym-app/internal/domain/status"
)

// Ограничения на название зала (совпадают с ограничениями имени пользователя).
const (
	NameMinLen = 3
	NameMaxLen = 50
)

// ErrInvalidName возвращается, когда название зала не проходит синтаксическую проверку.
var ErrInvalidName = errors.New("invalid gym name")

// Gym представляет зал, принадлежащий пользователю.
//
// Название зала уникально в пределах активных залов одного владельца:
// два разных пользователя могут иметь залы с одинаковым названием.
// Ссылка на владельца неизменяема после создания.
type Gym struct {
	ID        uuid.UUID     // Уникальный идентификатор (присваивается при сохранении)
	Name      string        // Название зала
	UserID    uuid.UUID     // Владелец (неизменяем после создания)
	Status    status.Status // Статус жизненного цикла
	UpdatedAt time.Time     // Время последнего обновления (поддерживается хранилищем)
}

// NewGym — фабрика для создания нового зала. Владелец привязывается
// на уровне usecase после проверки, что он существует и активен.
func NewGym(name string) *Gym {
	return &Gym{
		Name:   name,
		Status: status.Active,
	}
}

// IsActive возвращает true, если зал не был мягко удалён.
func (g *Gym) IsActive() bool {
	return g.Status == status.Active
}

// MarkInactive помечает зал как логически удалённый.
func (g *Gym) MarkInactive() {
	g.Status = status.Inactive
}

// ValidateName проверяет синтаксическую корректность названия зала.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be blank", ErrInvalidName)
	}
	if n := len([]rune(name)); n < NameMinLen || n > NameMaxLen {
		return fmt.Errorf("%w: name must be between %d and %d characters", ErrInvalidName, NameMinLen, NameMaxLen)
	}
	return nil
}
