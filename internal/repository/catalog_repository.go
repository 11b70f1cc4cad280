package repository

import (
	"github.com/esantostaype/task-automation-sub001/internal/models"
	"gorm.io/gorm"
)

// GormCatalogRepository is a GORM implementation of CatalogRepository
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) ListTypes() ([]models.TaskType, error) {
	var types []models.TaskType
	if err := r.db.Order("id ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *GormCatalogRepository) FindType(id uint64) (*models.TaskType, error) {
	var taskType models.TaskType
	if err := r.db.First(&taskType, id).Error; err != nil {
		return nil, err
	}
	return &taskType, nil
}

// ListBrands returns brands in creation order
func (r *GormCatalogRepository) ListBrands() ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.Order("created_at ASC, id ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *GormCatalogRepository) FindBrand(id uint64) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *GormCatalogRepository) ListCategories() ([]models.TaskCategory, error) {
	var categories []models.TaskCategory
	if err := r.db.Preload("Tier").Preload("Type").Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormCatalogRepository) FindCategory(id uint64) (*models.TaskCategory, error) {
	var category models.TaskCategory
	if err := r.db.Preload("Tier").First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Settings returns the raw key/value overrides for scheduler constants
func (r *GormCatalogRepository) Settings() (map[string]string, error) {
	var settings []models.Setting
	if err := r.db.Find(&settings).Error; err != nil {
		return nil, err
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}
	return values, nil
}
