package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	"igym-app/internal/domain/status"
	domain "igym-app/internal/domain/user"
	repo "igym-app/internal/repository/interfaces"
)

// pgUser представляет собой ORM-модель для таблицы users.
// Она максимально близко отражает схему БД и маппится в доменную модель User.
type pgUser struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey"`
	Name         string    `gorm:"column:name;type:varchar(50);not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Status       string    `gorm:"column:status;type:text;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (pgUser) TableName() string {
	return "users"
}

// UserRepository реализует repo.UserRepository с использованием GORM и Postgres.
type UserRepository struct {
	db *gorm.DB
}

// Убедимся на этапе компиляции, что структура реализует интерфейс.
var _ repo.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// isUniqueViolation проверяет, является ли ошибка нарушением уникального ограничения PostgreSQL.
// Ориентируется на код ошибки 23505 (unique_violation) и, при наличии, имя индекса/constraint.
func isUniqueViolation(err error, constraintNames ...string) bool {
	if err == nil {
		return false
	}

	// Предпочитаем структурированную ошибку драйвера pgx
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != "23505" { // unique_violation
			return false
		}
		// Если конкретные имена не заданы — достаточно кода ошибки
		if len(constraintNames) == 0 {
			return true
		}
		for _, name := range constraintNames {
			if name != "" && strings.EqualFold(pgErr.ConstraintName, name) {
				return true
			}
		}
		return false
	}

	// Fallback для нестандартных ошибок: ищем 23505 и имя индекса/constraint в сообщении
	errStr := err.Error()
	if !strings.Contains(errStr, "23505") {
		return false
	}
	if len(constraintNames) == 0 {
		return true
	}
	lower := strings.ToLower(errStr)
	for _, name := range constraintNames {
		if name != "" && strings.Contains(lower, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// toDomain маппит ORM-модель в доменную.
func (m *pgUser) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		ID:           id,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Status:       status.Status(m.Status),
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// fromDomain маппит доменную модель в ORM-модель.
func fromDomain(u *domain.User) *pgUser {
	return &pgUser{
		ID:           u.ID.String(),
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Status:       string(u.Status),
		UpdatedAt:    u.UpdatedAt,
	}
}

// Create создает нового пользователя в БД.
// Идентификатор присваивается здесь: до сохранения у доменной модели его нет.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.UpdatedAt = time.Now().UTC()

	model := fromDomain(user)
	err := dbFromContext(ctx, r.db).Create(model).Error
	if err != nil {
		// Частичный уникальный индекс по активным пользователям
		if isUniqueViolation(err, "uq_users_name_active") {
			return repo.ErrUserNameExists
		}
		return err
	}
	return nil
}

// oneByCondition возвращает одну активную запись по условию.
func (r *UserRepository) oneByCondition(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var model pgUser
	err := dbFromContext(ctx, r.db).
		Where("status = ?", string(status.Active)).
		Where(query, args...).
		Take(&model).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain()
}

// GetByID возвращает активного пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.oneByCondition(ctx, "id = ?", id.String())
}

// GetByName возвращает активного пользователя по имени.
func (r *UserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	return r.oneByCondition(ctx, "name = ?", name)
}

// ExistsByName возвращает true, если существует активный пользователь с таким именем.
func (r *UserRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).
		Model(&pgUser{}).
		Where("name = ? AND status = ?", name, string(status.Active)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List возвращает всех активных пользователей.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var models []pgUser
	err := dbFromContext(ctx, r.db).
		Where("status = ?", string(status.Active)).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(models))
	for i := range models {
		u, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// Update сохраняет имя и статус пользователя.
// Не изменяет защищенные поля: id, password_hash.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"name":       user.Name,
		"status":     string(user.Status),
		"updated_at": now,
	}

	result := dbFromContext(ctx, r.db).
		Model(&pgUser{}).
		Where("id = ?", user.ID.String()).
		Updates(updates)

	if result.Error != nil {
		if isUniqueViolation(result.Error, "uq_users_name_active") {
			return repo.ErrUserNameExists
		}
		return result.Error
	}

	// Если ни одна строка не была обновлена — пользователя нет в хранилище
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	user.UpdatedAt = now
	return nil
}
