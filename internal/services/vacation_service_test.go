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

// VacationServiceTestSuite defines the test suite for VacationService
type VacationServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *VacationService
	user    *models.User
}

// SetupTest runs before each test
func (suite *VacationServiceTestSuite) SetupTest() {
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

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	vacationRepo := repository.NewVacationRepository(suite.db)
	catalogRepo := repository.NewCatalogRepository(suite.db)

	notifier := NewNotifier()
	assignment := NewAssignmentService(
		taskRepo, userRepo, vacationRepo, catalogRepo,
		cache.NewMemory(time.Minute, nil), notifier, DefaultSchedulerSettings(), nil,
	)
	suite.service = NewVacationService(vacationRepo, userRepo, assignment, notifier)

	suite.user = &models.User{
		Name:         "resting",
		Email:        "resting@studio.test",
		PasswordHash: "hashedpassword",
		Active:       true,
	}
	suite.Require().NoError(suite.db.Create(suite.user).Error)
}

// TearDownTest runs after each test
func (suite *VacationServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *VacationServiceTestSuite) TestCreateVacation() {
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)

	vacation, err := suite.service.Create(suite.user.ID, start, end)
	suite.Require().NoError(err)
	suite.Equal(suite.user.ID, vacation.UserID)
	suite.NotZero(vacation.ID)
}

func (suite *VacationServiceTestSuite) TestRejectsInvertedRange() {
	start := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.Create(suite.user.ID, start, end)
	suite.Require().ErrorIs(err, ErrInvalidVacationRange)
}

func (suite *VacationServiceTestSuite) TestRejectsOverlap() {
	_, err := suite.service.Create(suite.user.ID,
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	_, err = suite.service.Create(suite.user.ID,
		time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC))
	suite.Require().ErrorIs(err, ErrVacationOverlap)
}

func (suite *VacationServiceTestSuite) TestUnknownUser() {
	_, err := suite.service.Create(9999,
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC))
	suite.Require().ErrorIs(err, ErrDesignerNotFound)
}

func (suite *VacationServiceTestSuite) TestDeleteVacation() {
	vacation, err := suite.service.Create(suite.user.ID,
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Delete(vacation.ID))
	suite.Require().ErrorIs(suite.service.Delete(vacation.ID), ErrVacationNotFound)
}

func TestVacationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VacationServiceTestSuite))
}
