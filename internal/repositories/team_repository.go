package repositories

import (
	"errors"

	"alerthub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTeamNotFound = errors.New("team not found")
)

type TeamRepository interface {
	Create(team *models.Team) error
	FindByID(id string) (*models.Team, error)
	FindByName(name string) (*models.Team, error)
	FindAll() ([]models.Team, error)
	Save(team *models.Team) error
	Delete(id string) error
}

type TeamRepositoryImpl struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &TeamRepositoryImpl{db: db}
}

func (r *TeamRepositoryImpl) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

func (r *TeamRepositoryImpl) FindByID(id string) (*models.Team, error) {
	var team models.Team
	err := r.db.First(&team, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepositoryImpl) FindByName(name string) (*models.Team, error) {
	var team models.Team
	err := r.db.First(&team, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepositoryImpl) FindAll() ([]models.Team, error) {
	var teams []models.Team
	err := r.db.Order("created_at ASC").Find(&teams).Error
	return teams, err
}

func (r *TeamRepositoryImpl) Save(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete удаляет команду, возвращая ее участников в состояние "без
// команды". Алерты с visibility=Team на эту команду не трогаем: они
// остаются в БД и просто перестают кому-либо доставляться.
func (r *TeamRepositoryImpl) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("team_id = ?", id).
			Update("team_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Team{}, "id = ?", id).Error
	})
}
