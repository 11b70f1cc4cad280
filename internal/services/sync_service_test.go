package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/esantostaype/task-automation-sub001/internal/cache"
	"github.com/esantostaype/task-automation-sub001/internal/models"
	"github.com/esantostaype/task-automation-sub001/internal/repository"
)

type stubSource struct {
	records []ExternalTask
}

func (s *stubSource) FetchTasks() ([]ExternalTask, error) {
	return s.records, nil
}

// SyncServiceTestSuite defines the test suite for SyncService
type SyncServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	taskRepo repository.TaskRepository
	service  *SyncService

	webType  *models.TaskType
	brand    *models.Brand
	category *models.TaskCategory
}

// SetupTest runs before each test
func (suite *SyncServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Vacation{},
		&models.TaskType{},
		&models.Brand{},
		&models.Tier{},
		&models.TaskCategory{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	suite.Require().NoError(err)

	suite.taskRepo = repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	vacationRepo := repository.NewVacationRepository(suite.db)
	catalogRepo := repository.NewCatalogRepository(suite.db)

	notifier := NewNotifier()
	assignment := NewAssignmentService(
		suite.taskRepo, userRepo, vacationRepo, catalogRepo,
		cache.NewMemory(time.Minute, nil), notifier, DefaultSchedulerSettings(), nil,
	)
	taskService := NewTaskService(suite.taskRepo, catalogRepo, assignment, notifier)
	suite.service = NewSyncService(suite.taskRepo, taskService, nil)

	// Catalog and one designer so imports can be assigned
	suite.webType = &models.TaskType{Name: "Web Design"}
	suite.Require().NoError(suite.db.Create(suite.webType).Error)
	suite.brand = &models.Brand{Name: "Acme"}
	suite.Require().NoError(suite.db.Create(suite.brand).Error)
	tier := &models.Tier{Name: "S", DurationDays: 1}
	suite.Require().NoError(suite.db.Create(tier).Error)
	suite.category = &models.TaskCategory{Name: "Landing Page", TypeID: suite.webType.ID, TierID: tier.ID}
	suite.Require().NoError(suite.db.Create(suite.category).Error)

	designer := &models.User{
		Name:         "solo",
		Email:        "solo@studio.test",
		PasswordHash: "hashedpassword",
		Active:       true,
	}
	suite.Require().NoError(suite.db.Create(designer).Error)
	role := &models.Role{UserID: designer.ID, TypeID: suite.webType.ID}
	suite.Require().NoError(suite.db.Create(role).Error)
}

// TearDownTest runs after each test
func (suite *SyncServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *SyncServiceTestSuite) record(externalID, name, status string) ExternalTask {
	return ExternalTask{
		ExternalID: externalID,
		Name:       name,
		Status:     status,
		TypeID:     suite.webType.ID,
		CategoryID: suite.category.ID,
		BrandID:    suite.brand.ID,
		Priority:   models.PriorityNormal,
	}
}

func (suite *SyncServiceTestSuite) TestImportCreatesNewTasks() {
	report, err := suite.service.ImportTasks([]ExternalTask{
		suite.record("ext-1", "Homepage", "to do"),
	})
	suite.Require().NoError(err)
	suite.Equal(1, report.Created)

	task, err := suite.taskRepo.FindByExternalID("ext-1")
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusToDo, task.Status)
}

func (suite *SyncServiceTestSuite) TestImportUpdatesKnownStatus() {
	_, err := suite.service.ImportTasks([]ExternalTask{
		suite.record("ext-1", "Homepage", "to do"),
	})
	suite.Require().NoError(err)

	report, err := suite.service.ImportTasks([]ExternalTask{
		suite.record("ext-1", "Homepage", "in progress"),
	})
	suite.Require().NoError(err)
	suite.Equal(1, report.Updated)
	suite.Equal(0, report.Created)

	task, err := suite.taskRepo.FindByExternalID("ext-1")
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, task.Status)
}

func (suite *SyncServiceTestSuite) TestImportExcludesUnmappableStatuses() {
	report, err := suite.service.ImportTasks([]ExternalTask{
		suite.record("ext-1", "Homepage", "blocked"),
		suite.record("ext-2", "Banner", ""),
	})
	suite.Require().NoError(err)
	suite.Equal(2, report.Excluded)
	suite.Equal(0, report.Created)
}

func (suite *SyncServiceTestSuite) TestImportSkipsAlreadyCompletedRecords() {
	report, err := suite.service.ImportTasks([]ExternalTask{
		suite.record("ext-1", "Homepage", "closed"),
	})
	suite.Require().NoError(err)
	suite.Equal(1, report.Excluded)

	_, err = suite.taskRepo.FindByExternalID("ext-1")
	suite.Require().Error(err)
}

func (suite *SyncServiceTestSuite) TestImportIsIdempotent() {
	records := []ExternalTask{suite.record("ext-1", "Homepage", "to do")}

	first, err := suite.service.ImportTasks(records)
	suite.Require().NoError(err)
	suite.Equal(1, first.Created)

	second, err := suite.service.ImportTasks(records)
	suite.Require().NoError(err)
	suite.Equal(0, second.Created)
	suite.Equal(0, second.Updated)
}

func (suite *SyncServiceTestSuite) TestTickPullsFromSource() {
	suite.service.source = &stubSource{records: []ExternalTask{
		suite.record("ext-9", "Pulled Task", "in progress"),
	}}

	suite.service.Tick()

	task, err := suite.taskRepo.FindByExternalID("ext-9")
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, task.Status)
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}
