package repository

import (
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/esantostaype/task-automation-sub001/internal/database"
	"github.com/esantostaype/task-automation-sub001/internal/models"
	"github.com/esantostaype/task-automation-sub001/internal/utils"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// CreateWithAssignment creates the task, assigns the designer and re-stamps
// the push chain in one transaction.
func (r *GormTaskRepository) CreateWithAssignment(task *models.Task, userID uint64, windows []TaskWindow) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		assignment := models.TaskAssignment{TaskID: task.ID, UserID: userID}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		return rescheduleTx(tx, windows)
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindByExternalID finds a synced task by its external tool ID
func (r *GormTaskRepository) FindByExternalID(externalID string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("external_id = ?", externalID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.TypeID != nil {
		query = query.Where("tasks.type_id = ?", *filter.TypeID)
	}
	if filter.BrandID != nil {
		query = query.Where("tasks.brand_id = ?", *filter.BrandID)
	}
	if filter.AssignedUserID != nil {
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.id").
			Where("task_assignments.user_id = ?", *filter.AssignedUserID).
			Where("task_assignments.deleted_at IS NULL")
		query = query.Where("EXISTS (?)", assignmentSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.start_date ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.
		Preload("Type").
		Preload("Brand").
		Preload("Category").
		Preload("Category.Tier").
		Preload("Assignments.User").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateStatus updates only the status of a task
func (r *GormTaskRepository) UpdateStatus(id uint64, status models.TaskStatus) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).
		Update("status", status).Error
}

// Delete removes a task and its assignments in one transaction
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}

// ActiveQueue returns a designer's non-complete tasks ordered by start date
func (r *GormTaskRepository) ActiveQueue(userID uint64, filter QueueFilter) ([]models.Task, error) {
	var tasks []models.Task

	assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
		Select("1").
		Where("task_assignments.task_id = tasks.id").
		Where("task_assignments.user_id = ?", userID).
		Where("task_assignments.deleted_at IS NULL")

	query := r.db.Model(&models.Task{}).
		Where("tasks.status <> ?", models.TaskStatusComplete).
		Where("EXISTS (?)", assignmentSubQuery)

	if filter.TypeID != nil {
		query = query.Where("tasks.type_id = ?", *filter.TypeID)
	}
	if filter.BrandID != nil {
		query = query.Where("tasks.brand_id = ?", *filter.BrandID)
	}

	err := query.
		Order("tasks.start_date ASC").
		Preload("Category").
		Preload("Category.Tier").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// Reschedule re-stamps every window within a single transaction
func (r *GormTaskRepository) Reschedule(windows []TaskWindow) error {
	if len(windows) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return rescheduleTx(tx, windows)
	})
}

func rescheduleTx(tx *gorm.DB, windows []TaskWindow) error {
	for _, w := range windows {
		err := tx.Model(&models.Task{}).Where("id = ?", w.TaskID).
			Updates(map[string]any{
				"start_date": w.StartDate,
				"deadline":   w.Deadline,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Serializable runs fn inside one serializable transaction. The repository
// handed to fn issues every read and write through that transaction, so a
// queue snapshot read in fn stays valid until fn's writes commit.
func (r *GormTaskRepository) Serializable(fn func(TaskRepository) error) error {
	run := func(tx *gorm.DB) error {
		return fn(&GormTaskRepository{db: tx})
	}
	if r.db.Dialector.Name() == "sqlite" {
		// sqlite transactions are serializable by default, and explicit
		// isolation levels depend on driver support.
		return r.db.Transaction(run)
	}
	return r.db.Transaction(run, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// AssignUsers assigns multiple users to a task
func (r *GormTaskRepository) AssignUsers(taskID uint64, userIDs []uint64) error {
	assignments := make([]models.TaskAssignment, len(userIDs))
	for i, userID := range userIDs {
		assignments[i] = models.TaskAssignment{
			TaskID: taskID,
			UserID: userID,
		}
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"deleted_at": gorm.Expr("NULL")}),
		}).
		Create(&assignments).Error
}
