package auth

// LoginRequest описывает тело запроса входа.
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse описывает успешный ответ на вход.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
