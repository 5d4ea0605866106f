package services

import (
	"alerthub_backend/internal/models"
	"alerthub_backend/internal/repositories"
	"alerthub_backend/internal/services/dto"
	"alerthub_backend/pkg/apperrors"
)

type TeamService interface {
	CreateTeam(req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	ListTeams() ([]dto.TeamResponse, error)
	UpdateTeam(teamID string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error)
	DeleteTeam(teamID string) error
}

type teamService struct {
	teamRepo repositories.TeamRepository
}

func NewTeamService(teamRepo repositories.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

func (s *teamService) CreateTeam(req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if _, err := s.teamRepo.FindByName(req.Name); err == nil {
		return nil, apperrors.ErrTeamNameTaken
	} else if err != repositories.ErrTeamNotFound {
		return nil, apperrors.InternalError(err)
	}

	team := &models.Team{Name: req.Name}
	if err := s.teamRepo.Create(team); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TeamResponse{ID: team.ID, Name: team.Name}, nil
}

func (s *teamService) ListTeams() ([]dto.TeamResponse, error) {
	teams, err := s.teamRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.TeamResponse, 0, len(teams))
	for _, team := range teams {
		result = append(result, dto.TeamResponse{ID: team.ID, Name: team.Name})
	}
	return result, nil
}

func (s *teamService) UpdateTeam(teamID string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if err == repositories.ErrTeamNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil && *req.Name != team.Name {
		if _, err := s.teamRepo.FindByName(*req.Name); err == nil {
			return nil, apperrors.ErrTeamNameTaken
		} else if err != repositories.ErrTeamNotFound {
			return nil, apperrors.InternalError(err)
		}
		team.Name = *req.Name
	}

	if err := s.teamRepo.Save(team); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TeamResponse{ID: team.ID, Name: team.Name}, nil
}

// DeleteTeam удаляет команду; участники остаются без команды, а не
// удаляются каскадом. Team-алерты на эту команду не трогаем:
// resolve для них дальше вернет пустую аудиторию.
func (s *teamService) DeleteTeam(teamID string) error {
	if _, err := s.teamRepo.FindByID(teamID); err != nil {
		if err == repositories.ErrTeamNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if err := s.teamRepo.Delete(teamID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
