package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/esantostaype/task-automation-sub001/internal/models"
	"github.com/esantostaype/task-automation-sub001/internal/repository"
)

var (
	ErrVacationNotFound     = errors.New("vacation not found")
	ErrInvalidVacationRange = errors.New("vacation end must be after start")
	ErrVacationOverlap      = errors.New("vacation overlaps an existing vacation")
)

// VacationService handles vacation business logic
type VacationService struct {
	vacationRepo repository.VacationRepository
	userRepo     repository.UserRepository
	assignment   *AssignmentService
	notifier     *Notifier
}

// NewVacationService creates a new VacationService
func NewVacationService(vacationRepo repository.VacationRepository, userRepo repository.UserRepository, assignment *AssignmentService, notifier *Notifier) *VacationService {
	return &VacationService{
		vacationRepo: vacationRepo,
		userRepo:     userRepo,
		assignment:   assignment,
		notifier:     notifier,
	}
}

// Create registers a vacation for a user. Vacations change every slot the
// user could take, so the scheduling cache is dropped on success.
func (s *VacationService) Create(userID uint64, start, end time.Time) (*models.Vacation, error) {
	if !end.After(start) {
		return nil, ErrInvalidVacationRange
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignerNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	existing, err := s.vacationRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacations: %w", err)
	}
	for _, v := range existing {
		if v.Overlaps(start, end) {
			return nil, ErrVacationOverlap
		}
	}

	vacation := &models.Vacation{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.vacationRepo.Create(vacation); err != nil {
		return nil, fmt.Errorf("failed to create vacation: %w", err)
	}

	s.assignment.InvalidateSchedulingCache()
	s.notifier.Publish(EventVacationChanged, 0, userID)
	return vacation, nil
}

// Delete removes a vacation
func (s *VacationService) Delete(vacationID uint64) error {
	vacation, err := s.vacationRepo.FindByID(vacationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVacationNotFound
		}
		return fmt.Errorf("failed to find vacation: %w", err)
	}

	if err := s.vacationRepo.Delete(vacation.ID); err != nil {
		return fmt.Errorf("failed to delete vacation: %w", err)
	}

	s.assignment.InvalidateSchedulingCache()
	s.notifier.Publish(EventVacationChanged, 0, vacation.UserID)
	return nil
}

// ListByUser returns a user's vacations
func (s *VacationService) ListByUser(userID uint64) ([]models.Vacation, error) {
	vacations, err := s.vacationRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacations: %w", err)
	}
	return vacations, nil
}
