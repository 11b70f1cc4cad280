package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/esantostaype/task-automation-sub001/internal/models"
	"github.com/esantostaype/task-automation-sub001/internal/repository"
)

var (
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleExists   = errors.New("user already holds this role")
)

// RoleService handles designer role grants. Role changes alter who the
// selector may pick, so the scheduling cache is dropped on every mutation.
type RoleService struct {
	userRepo    repository.UserRepository
	catalogRepo repository.CatalogRepository
	assignment  *AssignmentService
	notifier    *Notifier
}

// NewRoleService creates a new RoleService
func NewRoleService(userRepo repository.UserRepository, catalogRepo repository.CatalogRepository, assignment *AssignmentService, notifier *Notifier) *RoleService {
	return &RoleService{
		userRepo:    userRepo,
		catalogRepo: catalogRepo,
		assignment:  assignment,
		notifier:    notifier,
	}
}

// Grant gives a user a role for a task type, optionally scoped to one brand.
func (s *RoleService) Grant(userID, typeID uint64, brandID *uint64) (*models.Role, error) {
	user, err := s.userRepo.FindByID(userID, "Roles")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignerNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.catalogRepo.FindType(typeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("failed to find task type: %w", err)
	}
	if brandID != nil {
		if _, err := s.catalogRepo.FindBrand(*brandID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBrandNotFound
			}
			return nil, fmt.Errorf("failed to find brand: %w", err)
		}
	}

	for _, r := range user.Roles {
		if r.TypeID == typeID && sameBrandScope(r.BrandID, brandID) {
			return nil, ErrRoleExists
		}
	}

	role := &models.Role{UserID: userID, TypeID: typeID, BrandID: brandID}
	if err := s.userRepo.GrantRole(role); err != nil {
		return nil, fmt.Errorf("failed to grant role: %w", err)
	}

	s.assignment.InvalidateSchedulingCache()
	s.notifier.Publish(EventRoleChanged, 0, userID)
	return role, nil
}

// Revoke removes a role from its holder
func (s *RoleService) Revoke(roleID uint64) error {
	role, err := s.userRepo.FindRole(roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("failed to find role: %w", err)
	}

	if err := s.userRepo.RevokeRole(role.ID); err != nil {
		return fmt.Errorf("failed to revoke role: %w", err)
	}

	s.assignment.InvalidateSchedulingCache()
	s.notifier.Publish(EventRoleChanged, 0, role.UserID)
	return nil
}

func sameBrandScope(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
