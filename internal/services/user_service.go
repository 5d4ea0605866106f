package services

import (
	"alerthub_backend/internal/models"
	"alerthub_backend/internal/repositories"
	"alerthub_backend/internal/services/dto"
	"alerthub_backend/pkg/apperrors"
)

type UserService interface {
	CreateUser(req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(userID string) (*dto.UserResponse, error)
	ListUsers() ([]dto.UserResponse, error)
	UpdateUser(userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(userID string) error
}

type userService struct {
	userRepo repositories.UserRepository
	teamRepo repositories.TeamRepository
}

func NewUserService(userRepo repositories.UserRepository, teamRepo repositories.TeamRepository) UserService {
	return &userService{
		userRepo: userRepo,
		teamRepo: teamRepo,
	}
}

func (s *userService) CreateUser(req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if err != repositories.ErrUserNotFound {
		return nil, apperrors.InternalError(err)
	}

	if err := s.requireTeam(req.TeamID); err != nil {
		return nil, err
	}

	user := &models.User{
		Name:    req.Name,
		Email:   req.Email,
		TeamID:  normalizeID(req.TeamID),
		IsAdmin: req.IsAdmin,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetUser(user.ID)
}

func (s *userService) GetUser(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildUserResponse(user), nil
}

func (s *userService) ListUsers() ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *buildUserResponse(&users[i]))
	}
	return result, nil
}

func (s *userService) UpdateUser(userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*req.Email); err == nil {
			return nil, apperrors.ErrEmailTaken
		} else if err != repositories.ErrUserNotFound {
			return nil, apperrors.InternalError(err)
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.TeamID != nil {
		if err := s.requireTeam(req.TeamID); err != nil {
			return nil, err
		}
		user.TeamID = normalizeID(req.TeamID)
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetUser(user.ID)
}

// DeleteUser удаляет пользователя вместе с его состояниями и журналом
// доставок. Алерты, которые он создал или на которые таргетирован,
// остаются (осиротевший User-алерт больше никому не доставляется).
func (s *userService) DeleteUser(userID string) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) requireTeam(teamID *string) error {
	if teamID == nil || *teamID == "" {
		return nil
	}
	if _, err := s.teamRepo.FindByID(*teamID); err != nil {
		if err == repositories.ErrTeamNotFound {
			return apperrors.ValidationError(map[string]string{"team_id": "team does not exist"})
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		TeamID:  user.TeamID,
	}
	if user.Team != nil {
		resp.TeamName = &user.Team.Name
	}
	return resp
}

// normalizeID превращает пустую строку в nil (фронтенд шлет "" для
// "без команды").
func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
