package dto

type CreateTeamRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateTeamRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

type TeamResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
