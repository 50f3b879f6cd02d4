package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "igym-app/internal/domain/gym"
	"igym-app/internal/domain/status"
	repo "igym-app/internal/repository/interfaces"
)

// pgGym представляет собой ORM-модель для таблицы gyms.
type pgGym struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(50);not null"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null"`
	Status    string    `gorm:"column:status;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (pgGym) TableName() string {
	return "gyms"
}

// GymRepository реализует repo.GymRepository с использованием GORM и Postgres.
type GymRepository struct {
	db *gorm.DB
}

var _ repo.GymRepository = (*GymRepository)(nil)

// NewGymRepository создает новый репозиторий залов.
func NewGymRepository(db *gorm.DB) *GymRepository {
	return &GymRepository{db: db}
}

// toDomain маппит ORM-модель в доменную.
func (m *pgGym) toDomain() (*domain.Gym, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, err
	}

	return &domain.Gym{
		ID:        id,
		Name:      m.Name,
		UserID:    userID,
		Status:    status.Status(m.Status),
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// fromDomainGym маппит доменную модель в ORM-модель.
func fromDomainGym(g *domain.Gym) *pgGym {
	return &pgGym{
		ID:        g.ID.String(),
		Name:      g.Name,
		UserID:    g.UserID.String(),
		Status:    string(g.Status),
		UpdatedAt: g.UpdatedAt,
	}
}

// Create создает новый зал в БД.
func (r *GymRepository) Create(ctx context.Context, gym *domain.Gym) error {
	if gym.ID == uuid.Nil {
		gym.ID = uuid.New()
	}
	gym.UpdatedAt = time.Now().UTC()

	model := fromDomainGym(gym)
	err := dbFromContext(ctx, r.db).Create(model).Error
	if err != nil {
		// Частичный уникальный индекс по активным залам владельца
		if isUniqueViolation(err, "uq_gyms_user_name_active") {
			return repo.ErrGymNameExists
		}
		return err
	}
	return nil
}

// GetByID возвращает активный зал по идентификатору.
func (r *GymRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error) {
	var model pgGym
	err := dbFromContext(ctx, r.db).
		Where("id = ? AND status = ?", id.String(), string(status.Active)).
		Take(&model).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain()
}

// ExistsByNameAndUserID возвращает true, если у пользователя уже есть
// активный зал с таким названием.
func (r *GymRepository) ExistsByNameAndUserID(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).
		Model(&pgGym{}).
		Where("name = ? AND user_id = ? AND status = ?", name, userID.String(), string(status.Active)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List возвращает все активные залы.
func (r *GymRepository) List(ctx context.Context) ([]*domain.Gym, error) {
	var models []pgGym
	err := dbFromContext(ctx, r.db).
		Where("status = ?", string(status.Active)).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return gymsToDomain(models)
}

// ListByUserID возвращает активные залы пользователя.
func (r *GymRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Gym, error) {
	var models []pgGym
	err := dbFromContext(ctx, r.db).
		Where("user_id = ? AND status = ?", userID.String(), string(status.Active)).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return gymsToDomain(models)
}

func gymsToDomain(models []pgGym) ([]*domain.Gym, error) {
	gyms := make([]*domain.Gym, 0, len(models))
	for i := range models {
		g, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		gyms = append(gyms, g)
	}
	return gyms, nil
}

// Update сохраняет название и статус зала.
// Не изменяет защищенные поля: id, user_id.
func (r *GymRepository) Update(ctx context.Context, gym *domain.Gym) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"name":       gym.Name,
		"status":     string(gym.Status),
		"updated_at": now,
	}

	result := dbFromContext(ctx, r.db).
		Model(&pgGym{}).
		Where("id = ?", gym.ID.String()).
		Updates(updates)

	if result.Error != nil {
		if isUniqueViolation(result.Error, "uq_gyms_user_name_active") {
			return repo.ErrGymNameExists
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	gym.UpdatedAt = now
	return nil
}
