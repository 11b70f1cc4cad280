package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/esantostaype/task-automation-sub001/internal/cache"
	"github.com/esantostaype/task-automation-sub001/internal/models"
	"github.com/esantostaype/task-automation-sub001/internal/repository"
	"github.com/esantostaype/task-automation-sub001/internal/scheduling"
)

var (
	ErrInvalidTypeID    = errors.New("type id is required")
	ErrInvalidBrandID   = errors.New("brand id is required")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidDuration  = errors.New("duration must be positive")
	ErrTypeNotFound     = errors.New("task type not found")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrDesignerNotFound = errors.New("designer not found")
)

// BestUserResult is the outcome of a best-designer selection. A nil Slot means
// no assignment is possible; Diagnostics explains why.
type BestUserResult struct {
	Slot        *scheduling.UserSlot   `json:"slot"`
	Diagnostics scheduling.Diagnostics `json:"diagnostics"`
	// BrandID is the brand the winning slot was computed for; it differs from
	// the requested brand when the multi-brand fallback kicked in.
	BrandID uint64 `json:"brand_id"`
}

// AssignmentService computes who a task should go to and where it lands in the
// winner's queue.
type AssignmentService struct {
	taskRepo     repository.TaskRepository
	userRepo     repository.UserRepository
	vacationRepo repository.VacationRepository
	catalogRepo  repository.CatalogRepository
	cache        cache.Cache
	notifier     *Notifier
	settings     SchedulerSettings
	now          func() time.Time
}

// NewAssignmentService creates a new AssignmentService. now may be nil outside
// of tests.
func NewAssignmentService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	vacationRepo repository.VacationRepository,
	catalogRepo repository.CatalogRepository,
	c cache.Cache,
	notifier *Notifier,
	settings SchedulerSettings,
	now func() time.Time,
) *AssignmentService {
	if now == nil {
		now = time.Now
	}
	return &AssignmentService{
		taskRepo:     taskRepo,
		userRepo:     userRepo,
		vacationRepo: vacationRepo,
		catalogRepo:  catalogRepo,
		cache:        c,
		notifier:     notifier,
		settings:     settings,
		now:          now,
	}
}

// GetBestUserWithCache returns the best available designer for a task of the
// given type, brand, priority and duration, or a nil slot when nobody
// compatible exists. When the requested brand has no candidate, brands are
// retried in creation order and the first one yielding a winner is used.
func (s *AssignmentService) GetBestUserWithCache(typeID, brandID uint64, priority models.TaskPriority, durationDays float64) (*BestUserResult, error) {
	switch {
	case typeID == 0:
		return nil, ErrInvalidTypeID
	case brandID == 0:
		return nil, ErrInvalidBrandID
	case !models.ValidPriority(priority):
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	case durationDays <= 0:
		return nil, ErrInvalidDuration
	}

	if _, err := s.catalogRepo.FindType(typeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("failed to find task type: %w", err)
	}
	if _, err := s.catalogRepo.FindBrand(brandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to find brand: %w", err)
	}

	key := fmt.Sprintf("bestuser:%d:%d:%s:%g", typeID, brandID, priority, durationDays)
	if cached, ok := s.cache.Get(key); ok {
		if result, ok := cached.(*BestUserResult); ok {
			return result, nil
		}
	}

	result, err := s.selectForBrand(typeID, brandID, durationDays)
	if err != nil {
		return nil, err
	}

	if result.Slot == nil {
		fallback, err := s.brandFallback(typeID, brandID, durationDays)
		if err != nil {
			return nil, err
		}
		if fallback != nil {
			result = fallback
		}
	}

	s.cache.Set(key, result)
	return result, nil
}

// selectForBrand builds the workload snapshot for one (type, brand) pair and
// runs the selector over it.
func (s *AssignmentService) selectForBrand(typeID, brandID uint64, durationDays float64) (*BestUserResult, error) {
	users, err := s.userRepo.CompatibleDesigners(typeID, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to load compatible designers: %w", err)
	}

	now := s.now()
	slots := make([]scheduling.UserSlot, 0, len(users))
	for _, user := range users {
		slot, err := s.slotFor(user, typeID, brandID, durationDays, now)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	winner, diag := scheduling.SelectBestSlot(s.settings.Selector, slots)
	return &BestUserResult{Slot: winner, Diagnostics: diag, BrandID: brandID}, nil
}

// slotFor computes (or recalls) one designer's vacation-aware slot.
func (s *AssignmentService) slotFor(user models.User, typeID, brandID uint64, durationDays float64, now time.Time) (scheduling.UserSlot, error) {
	key := fmt.Sprintf("slot:%d:%d:%d:%g", user.ID, typeID, brandID, durationDays)
	if cached, ok := s.cache.Get(key); ok {
		if slot, ok := cached.(scheduling.UserSlot); ok {
			return slot, nil
		}
	}

	queue, err := s.taskRepo.ActiveQueue(user.ID, repository.QueueFilter{TypeID: &typeID, BrandID: &brandID})
	if err != nil {
		return scheduling.UserSlot{}, fmt.Errorf("failed to load queue for user %d: %w", user.ID, err)
	}
	vacations, err := s.vacationRepo.ListUpcoming(user.ID, now)
	if err != nil {
		return scheduling.UserSlot{}, fmt.Errorf("failed to load vacations for user %d: %w", user.ID, err)
	}

	snapshot := scheduling.DesignerSnapshot{
		UserID:     user.ID,
		UserName:   user.Name,
		Specialist: user.IsSpecialistFor(typeID),
		Queue:      toQueuedTasks(queue),
		Vacations:  toVacationIntervals(vacations),
	}

	slot := scheduling.ComputeSlot(s.settings.Calendar, now, snapshot, durationDays)
	s.cache.Set(key, slot)
	return slot, nil
}

// brandFallback retries the selection across all brands in creation order.
func (s *AssignmentService) brandFallback(typeID, requestedBrandID uint64, durationDays float64) (*BestUserResult, error) {
	brands, err := s.catalogRepo.ListBrands()
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	for _, brand := range brands {
		if brand.ID == requestedBrandID {
			continue
		}
		result, err := s.selectForBrand(typeID, brand.ID, durationDays)
		if err != nil {
			return nil, err
		}
		if result.Slot != nil {
			return result, nil
		}
	}
	return nil, nil
}

// CalculatePriorityInsertion determines where a task of the given priority
// lands in the designer's queue and which existing tasks get pushed later.
func (s *AssignmentService) CalculatePriorityInsertion(userID uint64, priority models.TaskPriority, durationDays float64) (*scheduling.InsertionPlan, error) {
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}
	if durationDays <= 0 {
		return nil, ErrInvalidDuration
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignerNotFound
		}
		return nil, fmt.Errorf("failed to find designer: %w", err)
	}

	return s.planInsertion(s.taskRepo, userID, priority, durationDays, time.Time{})
}

// planInsertion reads the live queue through repo, so a caller holding a
// transaction-bound repository gets a plan pinned to that transaction's
// snapshot. notBefore floors the start of an insertion into an empty queue;
// that is how a vacation-aware slot date carries over to the stamped window.
func (s *AssignmentService) planInsertion(repo repository.TaskRepository, userID uint64, priority models.TaskPriority, durationDays float64, notBefore time.Time) (*scheduling.InsertionPlan, error) {
	queue, err := repo.ActiveQueue(userID, repository.QueueFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}

	base := s.now()
	if len(queue) == 0 && notBefore.After(base) {
		base = notBefore
	}
	return scheduling.PlanInsertion(s.settings.Calendar, s.settings.Insertion, base, toQueuedTasks(queue), priority, durationDays)
}

// ShiftTasksAfterInsertion persists the push chain computed by a previous
// CalculatePriorityInsertion. All windows commit in one transaction.
func (s *AssignmentService) ShiftTasksAfterInsertion(plan *scheduling.InsertionPlan) error {
	if plan == nil || len(plan.Affected) == 0 {
		return nil
	}

	windows := make([]repository.TaskWindow, len(plan.Affected))
	for i, shifted := range plan.Affected {
		windows[i] = repository.TaskWindow{
			TaskID:    shifted.Task.ID,
			StartDate: shifted.NewStart,
			Deadline:  shifted.NewDeadline,
		}
	}

	if err := s.taskRepo.Reschedule(windows); err != nil {
		return fmt.Errorf("failed to reschedule push chain: %w", err)
	}

	s.InvalidateSchedulingCache()
	for _, shifted := range plan.Affected {
		s.notifier.Publish(EventTaskRescheduled, shifted.Task.ID, 0)
	}
	return nil
}

// InvalidateSchedulingCache drops every memoized slot and selection. Called on
// any task, role or vacation mutation.
func (s *AssignmentService) InvalidateSchedulingCache() {
	s.cache.InvalidateByPrefix("slot:")
	s.cache.InvalidateByPrefix("bestuser:")
}

func toQueuedTasks(tasks []models.Task) []scheduling.QueuedTask {
	queue := make([]scheduling.QueuedTask, len(tasks))
	for i, t := range tasks {
		queue[i] = scheduling.QueuedTask{
			ID:           t.ID,
			Name:         t.Name,
			Priority:     t.Priority,
			DurationDays: t.DurationDays(),
			StartDate:    t.StartDate,
			Deadline:     t.Deadline,
		}
	}
	return queue
}

func toVacationIntervals(vacations []models.Vacation) []scheduling.VacationInterval {
	intervals := make([]scheduling.VacationInterval, len(vacations))
	for i, v := range vacations {
		intervals[i] = scheduling.VacationInterval{Start: v.StartDate, End: v.EndDate}
	}
	return intervals
}
