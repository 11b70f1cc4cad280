package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/esantostaype/task-automation-sub001/internal/cache"
	"github.com/esantostaype/task-automation-sub001/internal/config"
	"github.com/esantostaype/task-automation-sub001/internal/database"
	"github.com/esantostaype/task-automation-sub001/internal/handlers"
	"github.com/esantostaype/task-automation-sub001/internal/middleware"
	"github.com/esantostaype/task-automation-sub001/internal/repository"
	"github.com/esantostaype/task-automation-sub001/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup cookie session middleware
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions("task_session", store))

	// Repositories
	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	vacationRepo := repository.NewVacationRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// Scheduler settings, cache and event bus
	settings := services.LoadSchedulerSettings(catalogRepo)
	schedulingCache := cache.NewMemory(settings.CacheTTL, nil)
	notifier := services.NewNotifier()

	// Services
	authService := services.NewAuthService(userRepo)
	assignmentService := services.NewAssignmentService(taskRepo, userRepo, vacationRepo, catalogRepo, schedulingCache, notifier, settings, nil)
	taskService := services.NewTaskService(taskRepo, catalogRepo, assignmentService, notifier)
	vacationService := services.NewVacationService(vacationRepo, userRepo, assignmentService, notifier)
	roleService := services.NewRoleService(userRepo, catalogRepo, assignmentService, notifier)
	syncService := services.NewSyncService(taskRepo, taskService, nil)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, assignmentService)
	vacationHandler := handlers.NewVacationHandler(vacationService)
	roleHandler := handlers.NewRoleHandler(roleService)
	userHandler := handlers.NewUserHandler(userRepo, taskRepo)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Automation API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/suggest", taskHandler.SuggestDesigner)
			tasks.GET("/:id", middleware.RequireTask(), taskHandler.GetTask)
			tasks.PATCH("/:id/status", middleware.RequireTask(), taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", middleware.RequireTask(), taskHandler.DeleteTask)
		}

		// Designer routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/queue", userHandler.GetUserQueue)
			users.GET("/:id/vacations", vacationHandler.ListUserVacations)
			users.POST("/:id/roles", roleHandler.GrantRole)
			users.DELETE("/:id/roles/:role_id", roleHandler.RevokeRole)
		}

		// Vacation routes (protected)
		vacations := api.Group("/vacations")
		vacations.Use(middleware.RequireAuth())
		{
			vacations.POST("", vacationHandler.CreateVacation)
			vacations.DELETE("/:id", vacationHandler.DeleteVacation)
		}

		// Catalog routes (protected)
		catalog := api.Group("/catalog")
		catalog.Use(middleware.RequireAuth())
		{
			catalog.GET("/types", catalogHandler.ListTypes)
			catalog.GET("/brands", catalogHandler.ListBrands)
			catalog.GET("/categories", catalogHandler.ListCategories)
		}
	}

	// Start periodic external sync (noop without a configured source)
	if err := syncService.Start(cfg.SyncSpec); err != nil {
		log.Fatalf("Failed to start sync: %v", err)
	}
	defer syncService.Stop()

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
