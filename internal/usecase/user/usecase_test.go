package user_test

import (
	"context"
	"strings"
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
	useruc "igym-app/internal/usecase/user"
	workoutuc "igym-app/internal/usecase/workout"
	"igym-app/pkg/logger"
	"igym-app/pkg/password"
)

// ==== Fakes for repositories ====

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users map[uuid.UUID]*userdomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*userdomain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *userdomain.User) error {
	for _, e := range r.users {
		if e.Status == status.Active && e.Name == u.Name {
			return repo.ErrUserNameExists
		}
	}
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

func (r *fakeUserRepo) GetByName(_ context.Context, name string) (*userdomain.User, error) {
	for _, u := range r.users {
		if u.Status == status.Active && u.Name == name {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := r.GetByName(ctx, name)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeUserRepo) List(context.Context) ([]*userdomain.User, error) {
	var list []*userdomain.User
	for _, u := range r.users {
		if u.Status == status.Active {
			list = append(list, u)
		}
	}
	return list, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userdomain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

type fakeGymRepo struct {
	gyms map[uuid.UUID]*gymdomain.Gym
}

func newFakeGymRepo() *fakeGymRepo {
	return &fakeGymRepo{gyms: map[uuid.UUID]*gymdomain.Gym{}}
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

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: map[uuid.UUID]*workoutdomain.Workout{}}
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
	for _, e := range w.Exercises {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
	}
	r.workouts[w.ID] = w
	return nil
}

func (r *fakeWorkoutRepo) GetExerciseByID(_ context.Context, id uuid.UUID) (*workoutdomain.Exercise, error) {
	for _, w := range r.workouts {
		for _, e := range w.Exercises {
			if e.ID == id && e.Status == status.Active {
				return e, nil
			}
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeWorkoutRepo) UpdateExercise(_ context.Context, ex *workoutdomain.Exercise) error {
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
	users    *fakeUserRepo
	gyms     *fakeGymRepo
	workouts *fakeWorkoutRepo

	userSvc    useruc.Service
	gymSvc     gymuc.Service
	workoutSvc workoutuc.Service
}

// newEnv собирает полный граф сервисов поверх фейковых репозиториев,
// чтобы каскадная инактивация проходила через все уровни.
func newEnv() *env {
	users := newFakeUserRepo()
	gyms := newFakeGymRepo()
	workouts := newFakeWorkoutRepo()

	log := logger.Nop()
	tx := fakeTx{}

	workoutSvc := workoutuc.NewService(workouts, gyms, tx, log)
	gymSvc := gymuc.NewService(gyms, users, workoutSvc, tx, log)
	userSvc := useruc.NewService(users, gymSvc, tx, log)

	return &env{
		users:      users,
		gyms:       gyms,
		workouts:   workouts,
		userSvc:    userSvc,
		gymSvc:     gymSvc,
		workoutSvc: workoutSvc,
	}
}

func (e *env) mustCreateUser(t *testing.T, name string) *userdomain.User {
	t.Helper()
	u, err := e.userSvc.Create(context.Background(), name, "secret123")
	require.NoError(t, err)
	return u
}

// ==== Tests ====

func TestCreate_Success(t *testing.T) {
	e := newEnv()

	u, err := e.userSvc.Create(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, u.ID)
	require.Equal(t, "alice", u.Name)
	require.Equal(t, status.Active, u.Status)
	// Хранится хэш, а не сам пароль
	require.NotEqual(t, "secret123", u.PasswordHash)
	require.NoError(t, password.Compare(u.PasswordHash, "secret123"))
}

func TestCreate_PasswordLengthBounds(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.userSvc.Create(ctx, "alice", "short")
	require.ErrorIs(t, err, errs.ErrInvalidPassword)

	_, err = e.userSvc.Create(ctx, "alice", "veryverylongpassword123")
	require.ErrorIs(t, err, errs.ErrInvalidPassword)

	// Границы включительно: 6 и 20 символов проходят
	_, err = e.userSvc.Create(ctx, "alice", "123456")
	require.NoError(t, err)
	_, err = e.userSvc.Create(ctx, "bob", "12345678901234567890")
	require.NoError(t, err)
}

func TestCreate_DuplicateName(t *testing.T) {
	e := newEnv()
	e.mustCreateUser(t, "alice")

	_, err := e.userSvc.Create(context.Background(), "alice", "secret123")
	require.ErrorIs(t, err, errs.ErrDuplicateUser)
}

func TestCreate_NameFreedAfterDelete(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	u := e.mustCreateUser(t, "alice")
	require.NoError(t, e.userSvc.Delete(ctx, u.ID))

	// Имя инактивированного пользователя снова свободно
	_, err := e.userSvc.Create(ctx, "alice", "secret123")
	require.NoError(t, err)
}

func TestUpdateName_InvalidName(t *testing.T) {
	e := newEnv()
	u := e.mustCreateUser(t, "alice")

	tooLong := strings.Repeat("x", 51)
	for _, name := range []string{"ab", "   ", tooLong} {
		_, err := e.userSvc.UpdateName(context.Background(), u.ID, name)
		require.ErrorIs(t, err, userdomain.ErrInvalidName, "name %q", name)
	}
}

func TestUpdateName_OwnNameCollides(t *testing.T) {
	e := newEnv()
	u := e.mustCreateUser(t, "alice")

	// Повторная отправка собственного имени тоже конфликт
	_, err := e.userSvc.UpdateName(context.Background(), u.ID, "alice")
	require.ErrorIs(t, err, errs.ErrDuplicateUser)
}

func TestUpdateName_Success(t *testing.T) {
	e := newEnv()
	u := e.mustCreateUser(t, "alice")

	updated, err := e.userSvc.UpdateName(context.Background(), u.ID, "alicia")
	require.NoError(t, err)
	require.Equal(t, "alicia", updated.Name)

	got, err := e.userSvc.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "alicia", got.Name)
}

func TestUpdateName_NotFound(t *testing.T) {
	e := newEnv()

	_, err := e.userSvc.UpdateName(context.Background(), uuid.New(), "alice")
	require.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestFindAll_SkipsInactive(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	alice := e.mustCreateUser(t, "alice")
	e.mustCreateUser(t, "bob")
	require.NoError(t, e.userSvc.Delete(ctx, alice.ID))

	list, err := e.userSvc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "bob", list[0].Name)
}

func TestDelete_CascadesThroughWholeSubtree(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	u := e.mustCreateUser(t, "alice")

	g, err := e.gymSvc.Create(ctx, gymdomain.NewGym("iron temple"), u.ID)
	require.NoError(t, err)

	w, err := e.workoutSvc.Create(ctx, workoutdomain.NewWorkout("push day", []*workoutdomain.Exercise{
		{Name: "bench press", Weight: 80, Reps: 8, Sets: 4},
		{Name: "dips", Reps: 12, Sets: 3},
	}), g.ID)
	require.NoError(t, err)

	require.NoError(t, e.userSvc.Delete(ctx, u.ID))

	// Всё поддерево инактивировано, частичных каскадов нет
	require.Equal(t, status.Inactive, e.users.users[u.ID].Status)
	require.Equal(t, status.Inactive, e.gyms.gyms[g.ID].Status)
	require.Equal(t, status.Inactive, e.workouts.workouts[w.ID].Status)
	for _, ex := range e.workouts.workouts[w.ID].Exercises {
		require.Equal(t, status.Inactive, ex.Status)
	}
}

func TestDelete_SecondCallNotFound(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	u := e.mustCreateUser(t, "alice")
	require.NoError(t, e.userSvc.Delete(ctx, u.ID))

	err := e.userSvc.Delete(ctx, u.ID)
	require.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestDelete_SkipsAlreadyInactiveBranches(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	u := e.mustCreateUser(t, "alice")

	dead, err := e.gymSvc.Create(ctx, gymdomain.NewGym("old gym"), u.ID)
	require.NoError(t, err)
	alive, err := e.gymSvc.Create(ctx, gymdomain.NewGym("new gym"), u.ID)
	require.NoError(t, err)

	require.NoError(t, e.gymSvc.Delete(ctx, dead.ID))
	require.NoError(t, e.userSvc.Delete(ctx, u.ID))

	require.Equal(t, status.Inactive, e.gyms.gyms[dead.ID].Status)
	require.Equal(t, status.Inactive, e.gyms.gyms[alive.ID].Status)
	require.Equal(t, status.Inactive, e.users.users[u.ID].Status)
}
