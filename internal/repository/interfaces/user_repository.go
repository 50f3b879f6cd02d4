package interfaces

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "igym-app/internal/domain/user"
)

// ErrNotFound возвращается, когда сущность не найдена в хранилище
// или уже инактивирована: с точки зрения чтения это одно и то же.
var ErrNotFound = errors.New("entity not found")

// ErrUserNameExists возвращается при нарушении уникальности имени
// среди активных пользователей (ограничение на стороне БД).
var ErrUserNameExists = errors.New("user name already exists")

// UserRepository определяет контракт для работы с пользователями на уровне хранилища.
//
// Интерфейс оперирует доменной моделью User и не раскрывает деталей реализации (GORM, SQL и т.п.).
// Ни один метод чтения не возвращает инактивированных пользователей.
type UserRepository interface {
	// Create создает нового пользователя и присваивает ему идентификатор.
	// Возвращает ErrUserNameExists, если активный пользователь с таким именем уже есть.
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает активного пользователя по идентификатору.
	// Возвращает (nil, ErrNotFound), если пользователь не найден или инактивирован.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByName возвращает активного пользователя по имени.
	// Возвращает (nil, ErrNotFound), если пользователь не найден или инактивирован.
	GetByName(ctx context.Context, name string) (*domain.User, error)

	// ExistsByName возвращает true, если существует активный пользователь с таким именем.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// List возвращает всех активных пользователей.
	List(ctx context.Context) ([]*domain.User, error)

	// Update сохраняет имя и статус пользователя.
	// Не изменяет защищённые поля: id, password_hash.
	// Возвращает ErrNotFound, если пользователя нет в хранилище.
	Update(ctx context.Context, user *domain.User) error
}
