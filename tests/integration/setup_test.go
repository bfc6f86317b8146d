package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"spendwise/internal/events"
	"spendwise/internal/handlers"
	"spendwise/internal/logger"
	"spendwise/internal/middleware"
	"spendwise/internal/models"
	"spendwise/internal/parse"
	"spendwise/internal/services"
	"spendwise/internal/validator"
)

// testApp holds the full application stack for integration tests. The AI
// extractors are stubbed so tests can script the model's replies.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Text   *stubTextExtractor
	Voice  *stubVoiceExtractor
}

// stubTextExtractor lets a test script the text extraction outcome.
type stubTextExtractor struct {
	draft *parse.Draft
	err   error
}

func (s *stubTextExtractor) Extract(_ context.Context, _ parse.TextRequest, _ time.Time) (*parse.Draft, error) {
	return s.draft, s.err
}

// stubVoiceExtractor lets a test script the voice extraction outcome.
type stubVoiceExtractor struct {
	draft parse.VoiceDraft
}

func (s *stubVoiceExtractor) Extract(_ context.Context, _ string) parse.VoiceDraft {
	return s.draft
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single
// test, migrated and seeded with the fixed category set.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Expense{},
		&models.Budget{},
		&models.MonthlyBudgetTarget{},
		&models.Goal{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	for _, name := range parse.CategoryNames {
		if err := db.Create(&models.Category{Name: name}).Error; err != nil {
			t.Fatalf("failed to seed category %q: %v", name, err)
		}
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	text := &stubTextExtractor{err: parse.ErrTransport}
	voice := &stubVoiceExtractor{}

	// Services
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db, events.NoopPublisher{})
	targetService := services.NewTargetService(db)
	budgetService := services.NewBudgetService(db, targetService)
	goalService := services.NewGoalService(db)
	auditService := services.NewAuditService(db)
	extractionService := services.NewExtractionService(
		text, voice, categoryService, expenseService, "Asia/Kolkata", "INR")

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	targetHandler := handlers.NewTargetHandler(targetService)
	goalHandler := handlers.NewGoalHandler(goalService)
	aiHandler := handlers.NewAIHandler(extractionService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

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

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	ai := protected.Group("/ai")
	ai.POST("/parse-expense", aiHandler.ParseExpense)
	ai.POST("/voice-expense", aiHandler.VoiceExpense)

	return &testApp{DB: db, Router: router, Text: text, Voice: voice}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// categoryID returns the seeded id for a category name.
func (app *testApp) categoryID(t *testing.T, name string) uint {
	t.Helper()
	var category models.Category
	if err := app.DB.Where("name = ?", name).First(&category).Error; err != nil {
		t.Fatalf("failed to find category %q: %v", name, err)
	}
	return category.ID
}
