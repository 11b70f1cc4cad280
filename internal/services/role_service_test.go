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

// RoleServiceTestSuite defines the test suite for RoleService
type RoleServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	service    *RoleService
	assignment *AssignmentService

	webType *models.TaskType
	brand   *models.Brand
	user    *models.User
}

// SetupTest runs before each test
func (suite *RoleServiceTestSuite) SetupTest() {
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
	suite.assignment = NewAssignmentService(
		taskRepo, userRepo, vacationRepo, catalogRepo,
		cache.NewMemory(time.Minute, nil), notifier, DefaultSchedulerSettings(), nil,
	)
	suite.service = NewRoleService(userRepo, catalogRepo, suite.assignment, notifier)

	suite.webType = &models.TaskType{Name: "Web Design"}
	suite.Require().NoError(suite.db.Create(suite.webType).Error)
	suite.brand = &models.Brand{Name: "Acme"}
	suite.Require().NoError(suite.db.Create(suite.brand).Error)

	suite.user = &models.User{
		Name:         "newcomer",
		Email:        "newcomer@studio.test",
		PasswordHash: "hashedpassword",
		Active:       true,
	}
	suite.Require().NoError(suite.db.Create(suite.user).Error)
}

// TearDownTest runs after each test
func (suite *RoleServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RoleServiceTestSuite) TestGrantRole() {
	role, err := suite.service.Grant(suite.user.ID, suite.webType.ID, nil)
	suite.Require().NoError(err)
	suite.NotZero(role.ID)
	suite.Equal(suite.user.ID, role.UserID)
	suite.Nil(role.BrandID)
}

func (suite *RoleServiceTestSuite) TestGrantRoleUnlocksMemoizedSelection() {
	// With no roles the selection comes up empty and gets memoized.
	before, err := suite.assignment.GetBestUserWithCache(suite.webType.ID, suite.brand.ID, models.PriorityNormal, 1)
	suite.Require().NoError(err)
	suite.Nil(before.Slot)

	_, err = suite.service.Grant(suite.user.ID, suite.webType.ID, nil)
	suite.Require().NoError(err)

	// The grant drops the memoized result, so the fresh selection sees the
	// newly compatible designer.
	after, err := suite.assignment.GetBestUserWithCache(suite.webType.ID, suite.brand.ID, models.PriorityNormal, 1)
	suite.Require().NoError(err)
	suite.Require().NotNil(after.Slot)
	suite.Equal(suite.user.ID, after.Slot.UserID)
}

func (suite *RoleServiceTestSuite) TestGrantDuplicateRoleFails() {
	_, err := suite.service.Grant(suite.user.ID, suite.webType.ID, nil)
	suite.Require().NoError(err)

	_, err = suite.service.Grant(suite.user.ID, suite.webType.ID, nil)
	suite.Require().ErrorIs(err, ErrRoleExists)

	// A brand-scoped grant is a different scope than the global one.
	_, err = suite.service.Grant(suite.user.ID, suite.webType.ID, &suite.brand.ID)
	suite.Require().NoError(err)
}

func (suite *RoleServiceTestSuite) TestGrantRoleValidatesReferences() {
	_, err := suite.service.Grant(9999, suite.webType.ID, nil)
	suite.Require().ErrorIs(err, ErrDesignerNotFound)

	_, err = suite.service.Grant(suite.user.ID, 9999, nil)
	suite.Require().ErrorIs(err, ErrTypeNotFound)

	unknownBrand := uint64(9999)
	_, err = suite.service.Grant(suite.user.ID, suite.webType.ID, &unknownBrand)
	suite.Require().ErrorIs(err, ErrBrandNotFound)
}

func (suite *RoleServiceTestSuite) TestRevokeRoleRemovesSelectability() {
	role, err := suite.service.Grant(suite.user.ID, suite.webType.ID, nil)
	suite.Require().NoError(err)

	selected, err := suite.assignment.GetBestUserWithCache(suite.webType.ID, suite.brand.ID, models.PriorityNormal, 1)
	suite.Require().NoError(err)
	suite.Require().NotNil(selected.Slot)

	suite.Require().NoError(suite.service.Revoke(role.ID))

	after, err := suite.assignment.GetBestUserWithCache(suite.webType.ID, suite.brand.ID, models.PriorityNormal, 1)
	suite.Require().NoError(err)
	suite.Nil(after.Slot)
}

func (suite *RoleServiceTestSuite) TestRevokeUnknownRole() {
	suite.Require().ErrorIs(suite.service.Revoke(4242), ErrRoleNotFound)
}

func TestRoleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RoleServiceTestSuite))
}
