package gym_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	gymdomain "igym-app/internal/domain/gym"
	"igym-app/internal/domain/status"
	userdomain "igym-app/internal/domain/user"
	workoutdomain "igym-app/internal/domain/workout"
	repo "igym-app/internal/repository/interfaces"
	"igym-app/internal/usecase/errs"
	gymuc "igym-app/internal/usecase/gym"
	workoutuc "igym-app/internal/usecase/workout"
	"igym-app/pkg/logger"
)

// ==== Fakes for repositories ====

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users map[uuid.UUID]*userdomain.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *userdomain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*userdomain.User, error) {
	u, ok := r.users[id]
	if !ok || u.Status != status.Active {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByName(context.Context, string) (*userdomain.User, error) {
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) ExistsByName(context.Context, string) (bool, error) { return false, nil }

func (r *fakeUserRepo) List(context.Context) ([]*userdomain.User, error) { return nil, nil }

func (r *fakeUserRepo) Update(_ context.Context, u *userdomain.User) error {
	r.users[u.ID] = u
	return nil
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

func (r *fakeGymRepo) ExistsByNameAndUserID(_ context.Context, name string, userID uuid.UUID) (bool, error) {
	for _, g := range r.gyms {
		if g.Status == status.Active && g.Name == name && g.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeGymRepo) List(context.Context) ([]*gymdomain.Gym, error) {
	var list []*gymdomain.Gym
	for _, g := range r.gyms {
		if g.Status == status.Active {
			list = append(list, g)
		}
	}
	return list, nil
}

func (r *fakeGymRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*gymdomain.Gym, error) {
	var list []*gymdomain.Gym
	for _, g := range r.gyms {
		if g.Status == status.Active && g.UserID == userID {
			list = append(list, g)
		}
	}
	return list, nil
}

func (r *fakeGymRepo) Update(_ context.Context, g *gymdomain.Gym) error {
	if _, ok := r.gyms[g.ID]; !ok {
		return repo.ErrNotFound
	}
	r.gyms[g.ID] = g
	return nil
}

type fakeWorkoutRepo struct {
	workouts map[uuid.UUID]*workoutdomain.Workout
}

func (r *fakeWorkoutRepo) Create(_ context.Context, w *workoutdomain.Workout) error {
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

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id uuid.UUID) (*workoutdomain.Workout, error) {
	w, ok := r.workouts[id]
	if !ok || w.Status != status.Active {
		return nil, repo.ErrNotFound
	}
	return w, nil
}

func (r *fakeWorkoutRepo) ListByGymID(_ context.Context, gymID uuid.UUID) ([]*workoutdomain.Workout, error) {
	var list []*workoutdomain.Workout
	for _, w := range r.workouts {
		if w.Status == status.Active && w.GymID == gymID {
			list = append(list, w)
		}
	}
	return list, nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, w *workoutdomain.Workout) error {
	if _, ok := r.workouts[w.ID]; !ok {
		return repo.ErrNotFound
	}
	r.workouts[w.ID] = w
	return nil
}

func (r *fakeWorkoutRepo) GetExerciseByID(context.Context, uuid.UUID) (*workoutdomain.Exercise, error) {
	return nil, repo.ErrNotFound
}

func (r *fakeWorkoutRepo) UpdateExercise(context.Context, *workoutdomain.Exercise) error {
	return nil
}

// ==== Test harness ====

type env struct {
	users    *fakeUserRepo
	gyms     *fakeGymRepo
	workouts *fakeWorkoutRepo

	gymSvc     gymuc.Service
	workoutSvc workoutuc.Service
}

func newEnv() *env {
	users := &fakeUserRepo{users: map[uuid.UUID]*userdomain.User{}}
	gyms := &fakeGymRepo{gyms: map[uuid.UUID]*gymdomain.Gym{}}
	workouts := &fakeWorkoutRepo{workouts: map[uuid.UUID]*workoutdomain.Workout{}}

	log := logger.Nop()
	tx := fakeTx{}

	workoutSvc := workoutuc.NewService(workouts, gyms, tx, log)
	gymSvc := gymuc.NewService(gyms, users, workoutSvc, tx, log)

	return &env{
		users:      users,
		gyms:       gyms,
		workouts:   workouts,
		gymSvc:     gymSvc,
		workoutSvc: workoutSvc,
	}
}

func (e *env) addUser(name string) *userdomain.User {
	u := userdomain.NewUser(name, "hash")
	u.ID = uuid.New()
	e.users.users[u.ID] = u
	return u
}

// ==== Tests ====

func TestCreate_Success(t *testing.T) {
	e := newEnv()
	owner := e.addUser("alice")

	g, err := e.gymSvc.Create(context.Background(), gymdomain.NewGym("iron temple"), owner.ID)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, g.ID)
	require.Equal(t, owner.ID, g.UserID)
	require.Equal(t, status.Active, g.Status)
}

func TestCreate_OwnerMissing(t *testing.T) {
	e := newEnv()

	_, err := e.gymSvc.Create(context.Background(), gymdomain.NewGym("iron temple"), uuid.New())
	require.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestCreate_OwnerInactive(t *testing.T) {
	e := newEnv()
	owner := e.addUser("alice")
	owner.MarkInactive()

	_, err := e.gymSvc.Create(context.Background(), gymdomain.NewGym("iron temple"), owner.ID)
	require.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestCreate_DuplicateNameSameOwner(t *testing.T) {
	e := newEnv()
	owner := e.addUser("alice")
	ctx := context.Background()

	_, err := e.gymSvc.Create(ctx, gymdomain.NewGym("iron temple"), owner.ID)
	require.NoError(t, err)

	_, err = e.gymSvc.Create(ctx, gymdomain.NewGym("iron temple"), owner.ID)
	require.ErrorIs(t, err, errs.ErrDuplicateGym)
}

func TestCreate_SameNameDifferentOwners(t *testing.T) {
	e := newEnv()
	alice := e.addUser("alice")
	bob := e.addUser("bob")
	ctx := context.Background()

	_, err := e.gymSvc.Create(ctx, gymdomain.NewGym("iron temple"), alice.ID)
	require.NoError(t, err)

	// Уникальность названия действует в пределах владельца
	_, err = e.gymSvc.Create(ctx, gymdomain.NewGym("iron temple"), bob.ID)
	require.NoError(t, err)
}

func TestCreate_NameFreedAfterDelete(t *testing.T) {
	e := newEnv()
	owner := e.addUser("alice")
	ctx := context.Background()

	g, err := e.gymSvc.Create(ctx, gymdomain.NewGym("iron temple"), owner.ID)
	require.NoError(t, err)
	require.NoError(t, e.gymSvc.Delete(ctx, g.ID))

	_, err = e.gymSvc.Create(ctx, gymdomain.NewGym("iron temple"), owner.ID)
	require.NoError(t, err)
}

func TestUpdateName_OwnNameCollides(t *testing.T) {
	e := newEnv()
	owner := e.addUser("alice")
	ctx := context.Background()

	g, err := e.gymSvc.Create(ctx, gymdomain.NewGym("iron temple"), owner.ID)
	require.NoError(t, err)

	// Повторная отправка собственного названия тоже конфликт
	_, err = e.gymSvc.UpdateName(ctx, g.ID, "iron temple")
	require.ErrorIs(t, err, errs.ErrDuplicateGym)
}

func TestUpdateName_Success(t *testing.T) {
	e := newEnv()
	owner := e.addUser("alice")
	ctx := context.Background()

	g, err := e.gymSvc.Create(ctx, gymdomain.NewGym("iron temple"), owner.ID)
	require.NoError(t, err)

	updated, err := e.gymSvc.UpdateName(ctx, g.ID, "steel palace")
	require.NoError(t, err)
	require.Equal(t, "steel palace", updated.Name)
	// Владелец не меняется
	require.Equal(t, owner.ID, updated.UserID)
}

func TestUpdateName_NotFound(t *testing.T) {
	e := newEnv()

	_, err := e.gymSvc.UpdateName(context.Background(), uuid.New(), "steel palace")
	require.ErrorIs(t, err, errs.ErrGymNotFound)
}

func TestFindByUserID_OwnerMissing(t *testing.T) {
	e := newEnv()

	_, err := e.gymSvc.FindByUserID(context.Background(), uuid.New())
	require.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestDelete_CascadesToWorkouts(t *testing.T) {
	e := newEnv()
	owner := e.addUser("alice")
	ctx := context.Background()

	g, err := e.gymSvc.Create(ctx, gymdomain.NewGym("iron temple"), owner.ID)
	require.NoError(t, err)

	w, err := e.workoutSvc.Create(ctx, workoutdomain.NewWorkout("push day", []*workoutdomain.Exercise{
		{Name: "bench press", Weight: 80, Reps: 8, Sets: 4},
	}), g.ID)
	require.NoError(t, err)

	require.NoError(t, e.gymSvc.Delete(ctx, g.ID))

	require.Equal(t, status.Inactive, e.gyms.gyms[g.ID].Status)
	require.Equal(t, status.Inactive, e.workouts.workouts[w.ID].Status)
	for _, ex := range e.workouts.workouts[w.ID].Exercises {
		require.Equal(t, status.Inactive, ex.Status)
	}
	// Владелец остаётся активным: каскад идёт только вниз
	require.Equal(t, status.Active, e.users.users[owner.ID].Status)
}

func TestDelete_SecondCallNotFound(t *testing.T) {
	e := newEnv()
	owner := e.addUser("alice")
	ctx := context.Background()

	g, err := e.gymSvc.Create(ctx, gymdomain.NewGym("iron temple"), owner.ID)
	require.NoError(t, err)

	require.NoError(t, e.gymSvc.Delete(ctx, g.ID))
	require.ErrorIs(t, e.gymSvc.Delete(ctx, g.ID), errs.ErrGymNotFound)
}

func TestFindByID_InactiveInvisible(t *testing.T) {
	e := newEnv()
	owner := e.addUser("alice")
	ctx := context.Background()

	g, err := e.gymSvc.Create(ctx, gymdomain.NewGym("iron temple"), owner.ID)
	require.NoError(t, err)
	require.NoError(t, e.gymSvc.Delete(ctx, g.ID))

	_, err = e.gymSvc.FindByID(ctx, g.ID)
	require.ErrorIs(t, err, errs.ErrGymNotFound)
}
