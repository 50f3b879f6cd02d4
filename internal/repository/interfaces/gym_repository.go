package interfaces

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "igym-app/internal/domain/gym"
)

// ErrGymNameExists возвращается при нарушении уникальности названия зала
// среди активных залов одного владельца (ограничение на стороне БД).
var ErrGymNameExists = errors.New("gym name already exists for this user")

// GymRepository определяет контракт для работы с залами на уровне хранилища.
// Все методы чтения возвращают только активные залы.
type GymRepository interface {
	// Create создает новый зал и присваивает ему идентификатор.
	// Возвращает ErrGymNameExists, если у владельца уже есть активный зал с таким названием.
	Create(ctx context.Context, gym *domain.Gym) error

	// GetByID возвращает активный зал по идентификатору.
	// Возвращает (nil, ErrNotFound), если зал не найден или инактивирован.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error)

	// ExistsByNameAndUserID возвращает true, если у пользователя userID
	// уже есть активный зал с названием name.
	ExistsByNameAndUserID(ctx context.Context, name string, userID uuid.UUID) (bool, error)

	// List возвращает все активные залы.
	List(ctx context.Context) ([]*domain.Gym, error)

	// ListByUserID возвращает активные залы, принадлежащие пользователю.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Gym, error)

	// Update сохраняет название и статус зала.
	// Не изменяет защищённые поля: id, user_id.
	// Возвращает ErrNotFound, если зала нет в хранилище.
	Update(ctx context.Context, gym *domain.Gym) error
}
