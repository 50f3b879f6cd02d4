package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"igym-app/internal/domain/status"
	domain "igym-app/internal/domain/workout"
	repo "igym-app/internal/repository/interfaces"
)

// pgWorkout представляет собой ORM-модель для таблицы workouts.
type pgWorkout struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(50);not null"`
	GymID     string    `gorm:"column:gym_id;type:uuid;not null"`
	Status    string    `gorm:"column:status;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null"`

	Exercises []pgExercise `gorm:"foreignKey:WorkoutID;references:ID"`
}

func (pgWorkout) TableName() string {
	return "workouts"
}

// pgExercise представляет собой ORM-модель для таблицы exercises.
type pgExercise struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(50);not null"`
	Weight    float64   `gorm:"column:weight;type:numeric;not null"`
	Reps      int       `gorm:"column:reps;type:int;not null"`
	Sets      int       `gorm:"column:sets;type:int;not null"`
	Note      string    `gorm:"column:note;type:text"`
	WorkoutID string    `gorm:"column:workout_id;type:uuid;not null"`
	Status    string    `gorm:"column:status;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (pgExercise) TableName() string {
	return "exercises"
}

// WorkoutRepository реализует repo.WorkoutRepository с использованием GORM и Postgres.
type WorkoutRepository struct {
	db *gorm.DB
}

var _ repo.WorkoutRepository = (*WorkoutRepository)(nil)

// NewWorkoutRepository создает новый репозиторий тренировок.
func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

// toDomain маппит ORM-модель тренировки (с упражнениями) в доменную.
func (m *pgWorkout) toDomain() (*domain.Workout, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	gymID, err := uuid.Parse(m.GymID)
	if err != nil {
		return nil, err
	}

	exercises := make([]*domain.Exercise, 0, len(m.Exercises))
	for i := range m.Exercises {
		e, err := m.Exercises[i].toDomain()
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}

	return &domain.Workout{
		ID:        id,
		Name:      m.Name,
		GymID:     gymID,
		Status:    status.Status(m.Status),
		Exercises: exercises,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// toDomain маппит ORM-модель упражнения в доменную.
func (m *pgExercise) toDomain() (*domain.Exercise, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	workoutID, err := uuid.Parse(m.WorkoutID)
	if err != nil {
		return nil, err
	}

	return &domain.Exercise{
		ID:        id,
		Name:      m.Name,
		Weight:    m.Weight,
		Reps:      m.Reps,
		Sets:      m.Sets,
		Note:      m.Note,
		WorkoutID: workoutID,
		Status:    status.Status(m.Status),
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// fromDomainExercise маппит доменную модель упражнения в ORM-модель.
func fromDomainExercise(e *domain.Exercise) *pgExercise {
	return &pgExercise{
		ID:        e.ID.String(),
		Name:      e.Name,
		Weight:    e.Weight,
		Reps:      e.Reps,
		Sets:      e.Sets,
		Note:      e.Note,
		WorkoutID: e.WorkoutID.String(),
		Status:    string(e.Status),
		UpdatedAt: e.UpdatedAt,
	}
}

// Create создает тренировку вместе со всеми её упражнениями.
// Вызывается внутри транзакции TxManager, поэтому либо записываются
// все строки, либо ни одной.
func (r *WorkoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	db := dbFromContext(ctx, r.db)
	now := time.Now().UTC()

	if workout.ID == uuid.Nil {
		workout.ID = uuid.New()
	}
	workout.UpdatedAt = now

	model := &pgWorkout{
		ID:        workout.ID.String(),
		Name:      workout.Name,
		GymID:     workout.GymID.String(),
		Status:    string(workout.Status),
		UpdatedAt: workout.UpdatedAt,
	}
	if err := db.Create(model).Error; err != nil {
		return err
	}

	for _, e := range workout.Exercises {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.WorkoutID = workout.ID
		e.UpdatedAt = now
		if err := db.Create(fromDomainExercise(e)).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID возвращает активную тренировку вместе со всеми её упражнениями.
// Упражнения загружаются без фильтра по статусу: видимость активного
// подмножества обеспечивает usecase-слой.
func (r *WorkoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error) {
	var model pgWorkout
	err := dbFromContext(ctx, r.db).
		Preload("Exercises").
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

// ListByGymID возвращает активные тренировки зала вместе с упражнениями.
func (r *WorkoutRepository) ListByGymID(ctx context.Context, gymID uuid.UUID) ([]*domain.Workout, error) {
	var models []pgWorkout
	err := dbFromContext(ctx, r.db).
		Preload("Exercises").
		Where("gym_id = ? AND status = ?", gymID.String(), string(status.Active)).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	workouts := make([]*domain.Workout, 0, len(models))
	for i := range models {
		w, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

// Update сохраняет название и статус тренировки и приводит набор её упражнений
// в хранилище в точное соответствие со списком workout.Exercises: перечисленные
// упражнения вставляются или обновляются, отсутствующие физически удаляются
// (они вытеснены полной заменой коллекции и никому не принадлежат).
func (r *WorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	db := dbFromContext(ctx, r.db)
	now := time.Now().UTC()

	result := db.Model(&pgWorkout{}).
		Where("id = ?", workout.ID.String()).
		Updates(map[string]interface{}{
			"name":       workout.Name,
			"status":     string(workout.Status),
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	workout.UpdatedAt = now

	// Собираем итоговый набор идентификаторов упражнений
	kept := make([]string, 0, len(workout.Exercises))
	for _, e := range workout.Exercises {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.WorkoutID = workout.ID
		e.UpdatedAt = now
		kept = append(kept, e.ID.String())
	}

	// Удаляем упражнения, не попавшие в новый список
	del := db.Where("workout_id = ?", workout.ID.String())
	if len(kept) > 0 {
		del = del.Where("id NOT IN ?", kept)
	}
	if err := del.Delete(&pgExercise{}).Error; err != nil {
		return err
	}

	// Вставляем новые и обновляем оставшиеся упражнения
	for _, e := range workout.Exercises {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(fromDomainExercise(e)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// GetExerciseByID возвращает активное упражнение по идентификатору.
func (r *WorkoutRepository) GetExerciseByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	var model pgExercise
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

// UpdateExercise сохраняет статус упражнения.
func (r *WorkoutRepository) UpdateExercise(ctx context.Context, exercise *domain.Exercise) error {
	now := time.Now().UTC()
	result := dbFromContext(ctx, r.db).
		Model(&pgExercise{}).
		Where("id = ?", exercise.ID.String()).
		Updates(map[string]interface{}{
			"status":     string(exercise.Status),
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	exercise.UpdatedAt = now
	return nil
}
