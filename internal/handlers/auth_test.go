package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/esantostaype/task-automation-sub001/internal/middleware"
	"github.com/esantostaype/task-automation-sub001/internal/models"
	"github.com/esantostaype/task-automation-sub001/internal/repository"
	"github.com/esantostaype/task-automation-sub001/internal/services"
)

// AuthHandlerTestSuite defines the test suite for AuthHandler
type AuthHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *AuthHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Role{}, &models.Vacation{})
	suite.Require().NoError(err)

	authService := services.NewAuthService(repository.NewUserRepository(suite.db))
	handler := NewAuthHandler(authService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	suite.router.Use(sessions.Sessions("task_session", store))

	auth := suite.router.Group("/api/auth")
	{
		auth.POST("/signup", handler.Signup)
		auth.POST("/login", handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.RequireAuth(), handler.GetCurrentUser)
	}
}

// TearDownTest runs after each test
func (suite *AuthHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthHandlerTestSuite) request(method, url string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var buf *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		buf = bytes.NewReader(raw)
	} else {
		buf = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestSignup() {
	w := suite.request(http.MethodPost, "/api/auth/signup", gin.H{
		"name":     "Ana",
		"email":    "ana@studio.test",
		"password": "supersecret",
	}, nil)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var user models.User
	suite.Require().NoError(suite.db.Where("email = ?", "ana@studio.test").First(&user).Error)
	suite.Equal("Ana", user.Name)
}

func (suite *AuthHandlerTestSuite) TestSignupRejectsInvalidEmail() {
	w := suite.request(http.MethodPost, "/api/auth/signup", gin.H{
		"name":     "Ana",
		"email":    "not-an-email",
		"password": "supersecret",
	}, nil)
	suite.Require().Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLoginSetsSession() {
	suite.request(http.MethodPost, "/api/auth/signup", gin.H{
		"name":     "Ana",
		"email":    "ana@studio.test",
		"password": "supersecret",
	}, nil)

	w := suite.request(http.MethodPost, "/api/auth/login", gin.H{
		"email":    "ana@studio.test",
		"password": "supersecret",
	}, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)

	me := suite.request(http.MethodGet, "/api/auth/me", nil, cookies)
	suite.Require().Equal(http.StatusOK, me.Code)

	var user struct {
		Email string `json:"email"`
	}
	suite.Require().NoError(json.Unmarshal(me.Body.Bytes(), &user))
	suite.Equal("ana@studio.test", user.Email)
}

func (suite *AuthHandlerTestSuite) TestLoginWrongPassword() {
	suite.request(http.MethodPost, "/api/auth/signup", gin.H{
		"name":     "Ana",
		"email":    "ana@studio.test",
		"password": "supersecret",
	}, nil)

	w := suite.request(http.MethodPost, "/api/auth/login", gin.H{
		"email":    "ana@studio.test",
		"password": "wrongpassword",
	}, nil)
	suite.Require().Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestMeRequiresSession() {
	w := suite.request(http.MethodGet, "/api/auth/me", nil, nil)
	suite.Require().Equal(http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
