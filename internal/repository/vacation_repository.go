package repository

import (
	"time"

	"github.com/esantostaype/task-automation-sub001/internal/models"
	"gorm.io/gorm"
)

// GormVacationRepository is a GORM implementation of VacationRepository
type GormVacationRepository struct {
	db *gorm.DB
}

// NewVacationRepository creates a new VacationRepository
func NewVacationRepository(db *gorm.DB) VacationRepository {
	return &GormVacationRepository{db: db}
}

// Create creates a new vacation
func (r *GormVacationRepository) Create(vacation *models.Vacation) error {
	return r.db.Create(vacation).Error
}

// Delete removes a vacation
func (r *GormVacationRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Vacation{}, id).Error
}

// FindByID finds a vacation by ID
func (r *GormVacationRepository) FindByID(id uint64) (*models.Vacation, error) {
	var vacation models.Vacation
	if err := r.db.First(&vacation, id).Error; err != nil {
		return nil, err
	}
	return &vacation, nil
}

// ListByUser returns every vacation of a user ordered by start date
func (r *GormVacationRepository) ListByUser(userID uint64) ([]models.Vacation, error) {
	var vacations []models.Vacation
	err := r.db.Where("user_id = ?", userID).
		Order("start_date ASC").
		Find(&vacations).Error
	if err != nil {
		return nil, err
	}
	return vacations, nil
}

// ListUpcoming returns a user's vacations that end at or after from
func (r *GormVacationRepository) ListUpcoming(userID uint64, from time.Time) ([]models.Vacation, error) {
	var vacations []models.Vacation
	err := r.db.Where("user_id = ? AND end_date >= ?", userID, from).
		Order("start_date ASC").
		Find(&vacations).Error
	if err != nil {
		return nil, err
	}
	return vacations, nil
}
