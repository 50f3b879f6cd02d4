package workout_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	gymdomain "igym-app/internal/domain/gym"
	"igym-app/internal/domain/status"
	domain "igym-app/internal/domain/workout"
	repo "igym-app/internal/repository/interfaces"
	"igym-app/internal/usecase/errs"
	workoutuc "igym-app/internal/usecase/workout"
	"igym-app/pkg/logger"
)

// ==== Fakes for repositories ====

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeGymRepo struct {
	gyms map[uuid.UUID]*gymdomain.Gym
}

func (r *fakeGymRepo) Create(_ context.Context, g *gymdomain.Gym) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.gyms[g.ID] = g
	return nil
}

func (r *fakeGymRepo) GetByID(_ context.Context, id uuid.UUID) (*gymdomain.Gym, error) {
	g, ok := r.gyms[id]
	if !ok || g.Status != status.Active {
		return nil, repo.ErrNotFound
	}
	return g, nil
}

func (r *fakeGymRepo) ExistsByNameAndUserID(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeGymRepo) List(context.Context) ([]*gymdomain.Gym, error) { return nil, nil }

func (r *fakeGymRepo) ListByUserID(context.Context, uuid.UUID) ([]*gymdomain.Gym, error) {
	return nil, nil
}

func (r *fakeGymRepo) Update(_ context.Context, g *gymdomain.Gym) error {
	r.gyms[g.ID] = g
	return nil
}

type fakeWorkoutRepo struct {
	workouts map[uuid.UUID]*domain.Workout
}

func (r *fakeWorkoutRepo) Create(_ context.Context, w *domain.Workout) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	for _, e := range w.Exercises {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.WorkoutID = w.ID
	}
	r.workouts[w.ID] = w
	return nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Workout, error) {
	w, ok := r.workouts[id]
	if !ok || w.Status != status.Active {
		return nil, repo.ErrNotFound
	}
	return w, nil
}

func (r *fakeWorkoutRepo) ListByGymID(_ context.Context, gymID uuid.UUID) ([]*domain.Workout, error) {
	var list []*domain.Workout
	for _, w := range r.workouts {
		if w.Status == status.Active && w.GymID == gymID {
			list = append(list, w)
		}
	}
	return list, nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, w *domain.Workout) error {
	if _, ok := r.workouts[w.ID]; !ok {
		return repo.ErrNotFound
	}
	for _, e := range w.Exercises {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
	}
	r.workouts[w.ID] = w
	return nil
}

func (r *fakeWorkoutRepo) GetExerciseByID(_ context.Context, id uuid.UUID) (*domain.Exercise, error) {
	for _, w := range r.workouts {
		for _, e := range w.Exercises {
			if e.ID == id && e.Status == status.Active {
				return e, nil
			}
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeWorkoutRepo) UpdateExercise(_ context.Context, ex *domain.Exercise) error {
	for _, w := range r.workouts {
		for i, e := range w.Exercises {
			if e.ID == ex.ID {
				w.Exercises[i] = ex
				return nil
			}
		}
	}
	return repo.ErrNotFound
}

// ==== Test harness ====

type env struct {
	gyms     *fakeGymRepo
	workouts *fakeWorkoutRepo
	svc      workoutuc.Service
}

func newEnv() *env {
	gyms := &fakeGymRepo{gyms: map[uuid.UUID]*gymdomain.Gym{}}
	workouts := &fakeWorkoutRepo{workouts: map[uuid.UUID]*domain.Workout{}}
	svc := workoutuc.NewService(workouts, gyms, fakeTx{}, logger.Nop())
	return &env{gyms: gyms, workouts: workouts, svc: svc}
}

func (e *env) addGym(name string) *gymdomain.Gym {
	g := gymdomain.NewGym(name)
	g.ID = uuid.New()
	g.UserID = uuid.New()
	e.gyms.gyms[g.ID] = g
	return g
}

func benchAndDips() []*domain.Exercise {
	return []*domain.Exercise{
		{Name: "bench press", Weight: 80, Reps: 8, Sets: 4},
		{Name: "dips", Reps: 12, Sets: 3, Note: "bodyweight"},
	}
}

// ==== Tests ====

func TestCreate_Success(t *testing.T) {
	e := newEnv()
	g := e.addGym("iron temple")

	w, err := e.svc.Create(context.Background(), domain.NewWorkout("push day", benchAndDips()), g.ID)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, w.ID)
	require.Equal(t, g.ID, w.GymID)
	require.Equal(t, status.Active, w.Status)
	require.Len(t, w.Exercises, 2)
	for _, ex := range w.Exercises {
		require.Equal(t, w.ID, ex.WorkoutID)
		require.Equal(t, status.Active, ex.Status)
	}
}

func TestCreate_GymMissing(t *testing.T) {
	e := newEnv()

	_, err := e.svc.Create(context.Background(), domain.NewWorkout("push day", benchAndDips()), uuid.New())
	require.ErrorIs(t, err, errs.ErrGymNotFound)
}

func TestCreate_GymInactive(t *testing.T) {
	e := newEnv()
	g := e.addGym("iron temple")
	g.MarkInactive()

	_, err := e.svc.Create(context.Background(), domain.NewWorkout("push day", benchAndDips()), g.ID)
	require.ErrorIs(t, err, errs.ErrGymNotFound)
}

func TestCreate_ForcesExerciseStatusActive(t *testing.T) {
	e := newEnv()
	g := e.addGym("iron temple")

	payload := domain.NewWorkout("push day", []*domain.Exercise{
		{Name: "bench press", Weight: 80, Reps: 8, Sets: 4, Status: status.Inactive},
	})

	w, err := e.svc.Create(context.Background(), payload, g.ID)
	require.NoError(t, err)
	require.Equal(t, status.Active, w.Exercises[0].Status)
}

func TestFindByID_FiltersInactiveExercises(t *testing.T) {
	e := newEnv()
	g := e.addGym("iron temple")
	ctx := context.Background()

	w, err := e.svc.Create(ctx, domain.NewWorkout("push day", benchAndDips()), g.ID)
	require.NoError(t, err)

	require.NoError(t, e.svc.DeleteExercise(ctx, w.Exercises[0].ID))

	got, err := e.svc.FindByID(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, got.Exercises, 1)
	require.Equal(t, "dips", got.Exercises[0].Name)
}

func TestFindByGymID_GymMissing(t *testing.T) {
	e := newEnv()

	_, err := e.svc.FindByGymID(context.Background(), uuid.New())
	require.ErrorIs(t, err, errs.ErrGymNotFound)
}

func TestFindByGymID_SkipsInactiveWorkouts(t *testing.T) {
	e := newEnv()
	g := e.addGym("iron temple")
	ctx := context.Background()

	alive, err := e.svc.Create(ctx, domain.NewWorkout("push day", benchAndDips()), g.ID)
	require.NoError(t, err)
	dead, err := e.svc.Create(ctx, domain.NewWorkout("pull day", benchAndDips()), g.ID)
	require.NoError(t, err)
	require.NoError(t, e.svc.Delete(ctx, dead.ID))

	list, err := e.svc.FindByGymID(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, alive.ID, list[0].ID)
}

func TestUpdate_ReplacesExerciseList(t *testing.T) {
	e := newEnv()
	g := e.addGym("iron temple")
	ctx := context.Background()

	w, err := e.svc.Create(ctx, domain.NewWorkout("push day", benchAndDips()), g.ID)
	require.NoError(t, err)
	kept := w.Exercises[0]

	payload := domain.NewWorkout("heavy push day", []*domain.Exercise{
		{ID: kept.ID, Name: "bench press", Weight: 90, Reps: 5, Sets: 5},
		{Name: "overhead press", Weight: 40, Reps: 8, Sets: 3},
	})

	got, err := e.svc.Update(ctx, w.ID, payload)
	require.NoError(t, err)
	require.Equal(t, "heavy push day", got.Name)
	require.Equal(t, g.ID, got.GymID)
	require.Len(t, got.Exercises, 2)

	// Присланный список замещает прежний полностью: dips выбыли
	names := []string{got.Exercises[0].Name, got.Exercises[1].Name}
	require.ElementsMatch(t, []string{"bench press", "overhead press"}, names)
	for _, ex := range got.Exercises {
		require.Equal(t, w.ID, ex.WorkoutID)
		require.Equal(t, status.Active, ex.Status)
	}
}

func TestUpdate_NeverInactivates(t *testing.T) {
	e := newEnv()
	g := e.addGym("iron temple")
	ctx := context.Background()

	w, err := e.svc.Create(ctx, domain.NewWorkout("push day", benchAndDips()), g.ID)
	require.NoError(t, err)

	// Клиент присылает inactive: канал обновления статусы игнорирует
	payload := domain.NewWorkout("push day", []*domain.Exercise{
		{Name: "bench press", Weight: 80, Reps: 8, Sets: 4, Status: status.Inactive},
	})
	payload.Status = status.Inactive

	got, err := e.svc.Update(ctx, w.ID, payload)
	require.NoError(t, err)
	require.Equal(t, status.Active, got.Status)
	for _, ex := range got.Exercises {
		require.Equal(t, status.Active, ex.Status)
	}
}

func TestUpdate_InactiveWorkoutNotRevivable(t *testing.T) {
	e := newEnv()
	g := e.addGym("iron temple")
	ctx := context.Background()

	w, err := e.svc.Create(ctx, domain.NewWorkout("push day", benchAndDips()), g.ID)
	require.NoError(t, err)
	require.NoError(t, e.svc.Delete(ctx, w.ID))

	_, err = e.svc.Update(ctx, w.ID, domain.NewWorkout("push day", benchAndDips()))
	require.ErrorIs(t, err, errs.ErrWorkoutNotFound)
}

func TestDelete_InactivatesExercises(t *testing.T) {
	e := newEnv()
	g := e.addGym("iron temple")
	ctx := context.Background()

	w, err := e.svc.Create(ctx, domain.NewWorkout("push day", benchAndDips()), g.ID)
	require.NoError(t, err)

	// Одно упражнение уже инактивировано до каскада
	require.NoError(t, e.svc.DeleteExercise(ctx, w.Exercises[0].ID))
	require.NoError(t, e.svc.Delete(ctx, w.ID))

	stored := e.workouts.workouts[w.ID]
	require.Equal(t, status.Inactive, stored.Status)
	for _, ex := range stored.Exercises {
		require.Equal(t, status.Inactive, ex.Status)
	}
}

func TestDelete_SecondCallNotFound(t *testing.T) {
	e := newEnv()
	g := e.addGym("iron temple")
	ctx := context.Background()

	w, err := e.svc.Create(ctx, domain.NewWorkout("push day", benchAndDips()), g.ID)
	require.NoError(t, err)

	require.NoError(t, e.svc.Delete(ctx, w.ID))
	require.ErrorIs(t, e.svc.Delete(ctx, w.ID), errs.ErrWorkoutNotFound)
}

func TestDeleteExercise_SecondCallNotFound(t *testing.T) {
	e := newEnv()
	g := e.addGym("iron temple")
	ctx := context.Background()

	w, err := e.svc.Create(ctx, domain.NewWorkout("push day", benchAndDips()), g.ID)
	require.NoError(t, err)
	exID := w.Exercises[0].ID

	require.NoError(t, e.svc.DeleteExercise(ctx, exID))
	require.ErrorIs(t, e.svc.DeleteExercise(ctx, exID), errs.ErrExerciseNotFound)
}

func TestDeleteExercise_Missing(t *testing.T) {
	e := newEnv()

	err := e.svc.DeleteExercise(context.Background(), uuid.New())
	require.ErrorIs(t, err, errs.ErrExerciseNotFound)
}
