// Package errs содержит ошибки бизнес-логики, общие для usecase-слоя.
//
// Handlers сопоставляют их с HTTP-статусами через errors.Is; сами usecase
// оборачивают их через fmt.Errorf("%w: ..."), добавляя идентификатор сущности.
package errs

import "errors"

// Ошибки вида «не найдено»: сущность отсутствует либо инактивирована —
// снаружи эти два случая неразличимы.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrGymNotFound      = errors.New("gym not found")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("exercise not found")
)

// Ошибки нарушения уникальности среди активных сущностей.
var (
	ErrDuplicateUser = errors.New("user with this name already exists")
	ErrDuplicateGym  = errors.New("gym with this name already exists for this user")
)

// Ошибки валидации и аутентификации.
var (
	ErrInvalidPassword    = errors.New("password must be between 6 and 20 characters")
	ErrInvalidCredentials = errors.New("invalid credentials provided")
)
