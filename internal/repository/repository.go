package repository

import (
	"time"

	"github.com/esantostaype/task-automation-sub001/internal/models"
)

// TaskWindow is the re-stamped working window of one task in a push chain.
type TaskWindow struct {
	TaskID    uint64
	StartDate time.Time
	Deadline  time.Time
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	TypeID         *uint64
	BrandID        *uint64
	AssignedUserID *uint64
	Page           int
	PageSize       int
}

// QueueFilter narrows a designer's active queue to one (type, brand). Nil
// fields leave the corresponding dimension unfiltered.
type QueueFilter struct {
	TypeID  *uint64
	BrandID *uint64
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// CreateWithAssignment creates the task, its assignment and the push-chain
	// re-stamps within a single transaction.
	CreateWithAssignment(task *models.Task, userID uint64, windows []TaskWindow) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindByExternalID finds a synced task by its external tool ID
	FindByExternalID(externalID string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdateStatus updates only the status of a task
	UpdateStatus(id uint64, status models.TaskStatus) error

	// Delete removes a task and its assignments in one transaction
	Delete(id uint64) error

	// ActiveQueue returns a designer's non-complete tasks ordered by start
	// date ascending, with category tiers preloaded for duration lookups.
	ActiveQueue(userID uint64, filter QueueFilter) ([]models.Task, error)

	// Reschedule re-stamps every window within a single transaction so a
	// mid-chain failure rolls the whole push chain back.
	Reschedule(windows []TaskWindow) error

	// AssignUsers assigns multiple users to a task
	AssignUsers(taskID uint64, userIDs []uint64) error

	// Serializable runs fn against a repository bound to a single serializable
	// transaction, committing when fn returns nil. Reads issued through that
	// repository see a snapshot no concurrent writer can invalidate before
	// fn's own writes commit.
	Serializable(fn func(TaskRepository) error) error
}

// UserRepository defines the interface for designer data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns every user with roles preloaded
	List() ([]models.User, error)

	// CompatibleDesigners returns the active users holding a role compatible
	// with the given type and brand (brand-scoped or global), with roles and
	// vacations preloaded.
	CompatibleDesigners(typeID, brandID uint64) ([]models.User, error)

	// GrantRole attaches a role to a user
	GrantRole(role *models.Role) error

	// FindRole finds a role by ID
	FindRole(id uint64) (*models.Role, error)

	// RevokeRole removes a role
	RevokeRole(id uint64) error
}

// VacationRepository defines the interface for vacation data access
type VacationRepository interface {
	// Create creates a new vacation
	Create(vacation *models.Vacation) error

	// Delete removes a vacation
	Delete(id uint64) error

	// FindByID finds a vacation by ID
	FindByID(id uint64) (*models.Vacation, error)

	// ListByUser returns every vacation of a user ordered by start date
	ListByUser(userID uint64) ([]models.Vacation, error)

	// ListUpcoming returns a user's vacations that end at or after from
	ListUpcoming(userID uint64, from time.Time) ([]models.Vacation, error)
}

// CatalogRepository defines the interface for type/brand/category/setting access
type CatalogRepository interface {
	ListTypes() ([]models.TaskType, error)
	FindType(id uint64) (*models.TaskType, error)

	// ListBrands returns brands in creation order, which the multi-brand
	// assignment fallback depends on.
	ListBrands() ([]models.Brand, error)
	FindBrand(id uint64) (*models.Brand, error)

	ListCategories() ([]models.TaskCategory, error)
	FindCategory(id uint64) (*models.TaskCategory, error)

	// Settings returns the raw key/value overrides for scheduler constants.
	Settings() (map[string]string, error)
}
