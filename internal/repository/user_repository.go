package repository

import (
	"github.com/esantostaype/task-automation-sub001/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every user with roles preloaded
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Preload("Roles").Order("users.id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GrantRole attaches a role to a user
func (r *GormUserRepository) GrantRole(role *models.Role) error {
	return r.db.Create(role).Error
}

// FindRole finds a role by ID
func (r *GormUserRepository) FindRole(id uint64) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// RevokeRole removes a role
func (r *GormUserRepository) RevokeRole(id uint64) error {
	return r.db.Delete(&models.Role{}, id).Error
}

// CompatibleDesigners returns the active users holding a compatible role.
// A role matches when its type equals typeID and it is either scoped to
// brandID or global (null brand).
func (r *GormUserRepository) CompatibleDesigners(typeID, brandID uint64) ([]models.User, error) {
	var users []models.User

	roleSubQuery := r.db.Model(&models.Role{}).
		Select("1").
		Where("roles.user_id = users.id").
		Where("roles.type_id = ?", typeID).
		Where("roles.brand_id = ? OR roles.brand_id IS NULL", brandID)

	err := r.db.Model(&models.User{}).
		Where("users.active = ?", true).
		Where("EXISTS (?)", roleSubQuery).
		Preload("Roles").
		Preload("Vacations").
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}
