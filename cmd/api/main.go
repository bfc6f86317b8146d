package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"spendwise/internal/ai"
	"spendwise/internal/config"
	"spendwise/internal/database"
	"spendwise/internal/events"
	"spendwise/internal/handlers"
	"spendwise/internal/logger"
	"spendwise/internal/middleware"
	"spendwise/internal/parse"
	"spendwise/internal/services"
	"spendwise/internal/validator"

	_ "spendwise/internal/docs" // Import swagger docs
)

// @title           Spendwise API
// @version         1.0
// @description     Spendwise is a personal finance backend that records expenses from natural-language text and voice transcripts and tracks per-category budgets.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Event publishing is optional; without a broker URL events are dropped.
	var publisher events.Publisher = events.NoopPublisher{}
	if appConfig.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(appConfig.AMQPURL, appConfig.AMQPExchange, appConfig.AMQPQueue)
		if err != nil {
			return fmt.Errorf("failed to connect to AMQP broker: %w", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	} else {
		log.Warn("AMQP_URL not set, expense events will not be published")
	}

	// AI extraction stack
	prompts := parse.DefaultPrompts()
	if appConfig.ParseSystemPrompt != "" {
		prompts = parse.PromptConfig{Version: "env", System: appConfig.ParseSystemPrompt}
	}
	chatClient := ai.NewHTTPChatClient(appConfig.ChatAPIKey, appConfig.ChatAPIURL, appConfig.ChatModel, appConfig.AITimeout)
	geminiClient := ai.NewGeminiClient(appConfig.GeminiAPIKey, appConfig.GeminiAPIURL, appConfig.GeminiModel, appConfig.AITimeout)

	loc, err := time.LoadLocation(appConfig.DefaultTimezone)
	if err != nil {
		log.Warnf("invalid DEFAULT_TIMEZONE %q, falling back to UTC", appConfig.DefaultTimezone)
		loc = time.UTC
	}

	textExtractor := parse.NewTextExtractor(chatClient, prompts)
	voiceExtractor := parse.NewVoiceExtractor(geminiClient, loc)

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db, publisher)
	targetService := services.NewTargetService(db)
	budgetService := services.NewBudgetService(db, targetService)
	goalService := services.NewGoalService(db)
	extractionService := services.NewExtractionService(
		textExtractor, voiceExtractor, categoryService, expenseService,
		appConfig.DefaultTimezone, appConfig.DefaultCurrency)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	targetHandler := handlers.NewTargetHandler(targetService)
	goalHandler := handlers.NewGoalHandler(goalService)
	aiHandler := handlers.NewAIHandler(extractionService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Category routes (read-only; the set is seeded by migration)
	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/summary", budgetHandler.GetBudgetSummary)
	budgets.POST("/target", targetHandler.SetTarget)
	budgets.GET("/target", targetHandler.GetTarget)
	budgets.DELETE("/target/:id", targetHandler.DeleteTarget)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// AI extraction routes, rate limited per client
	aiLimiter := middleware.NewRateLimiter(appConfig.AIRateLimitPerMinute, appConfig.AIRateLimitBurst)
	aiRoutes := protected.Group("/ai")
	aiRoutes.Use(aiLimiter.Middleware())
	aiRoutes.POST("/parse-expense", aiHandler.ParseExpense)
	aiRoutes.POST("/voice-expense", aiHandler.VoiceExpense)

	log.Infof("Starting Spendwise backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
