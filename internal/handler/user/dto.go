package user

import (
	"time"

	domain "igym-app/internal/domain/user"
)

// CreateUserRequest описывает тело запроса создания пользователя.
// Пароль принимается только здесь и никогда не возвращается обратно.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=20"`
}

// UpdateUserNameRequest описывает тело запроса переименования пользователя.
type UpdateUserNameRequest struct {
	Name string `json:"name" binding:"required,min=3,max=50"`
}

// UserResponse описывает представление пользователя в API.
// Хэш пароля в представление не попадает.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// toResponse маппит доменную модель в DTO.
func toResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Status:    string(u.Status),
		UpdatedAt: u.UpdatedAt,
	}
}
