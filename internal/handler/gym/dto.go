package gym

import (
	"time"

	domain "igym-app/internal/domain/gym"
)

// GymRequest описывает тело запроса создания зала.
type GymRequest struct {
	Name string `json:"name" binding:"required,min=3,max=50"`
}

// UpdateGymNameRequest описывает тело запроса переименования зала.
type UpdateGymNameRequest struct {
	Name string `json:"name" binding:"required,min=3,max=50"`
}

// GymResponse описывает представление зала в API.
type GymResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// toResponse маппит доменную модель в DTO.
func toResponse(g *domain.Gym) GymResponse {
	return GymResponse{
		ID:        g.ID.String(),
		Name:      g.Name,
		UserID:    g.UserID.String(),
		Status:    string(g.Status),
		UpdatedAt: g.UpdatedAt,
	}
}
