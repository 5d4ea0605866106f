package dto

type CreateUserRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Email   string  `json:"email" validate:"required,email"`
	TeamID  *string `json:"team_id"`
	IsAdmin bool    `json:"is_admin"`
}

type UpdateUserRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email   *string `json:"email" validate:"omitempty,email"`
	TeamID  *string `json:"team_id"`
	IsAdmin *bool   `json:"is_admin"`
}

type UserResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	IsAdmin  bool    `json:"is_admin"`
	TeamID   *string `json:"team_id,omitempty"`
	TeamName *string `json:"team_name,omitempty"`
}
