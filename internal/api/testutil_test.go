package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// setupTestDB opens an in-memory SQLite database with the full schema.
// TranslateError keeps duplicate-key detection identical to the MySQL path.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // a second pooled connection would see a different :memory: database
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Category{}, &domain.Transaction{}, &domain.Goal{}))
	return db
}

// setupRouter builds the full route table against the given database,
// mirroring cmd/server, with caching disabled
func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", RegisterHandler(db, testSecret))
	authGroup.POST("/login", LoginHandler(db, testSecret))

	categoryGroup := r.Group("/api/categories")
	categoryGroup.Use(middleware.JWTAuthMiddleware(testSecret))
	categoryGroup.GET("", ListCategoriesHandler(db))
	categoryGroup.POST("", CreateCategoryHandler(db))
	categoryGroup.PUT("/:id", UpdateCategoryHandler(db))
	categoryGroup.DELETE("/:id", DeleteCategoryHandler(db))

	transactionGroup := r.Group("/api/transactions")
	transactionGroup.Use(middleware.JWTAuthMiddleware(testSecret))
	transactionGroup.GET("", ListTransactionsHandler(db, nil))
	transactionGroup.POST("", CreateTransactionHandler(db, nil))
	transactionGroup.PUT("/:id", UpdateTransactionHandler(db, nil))
	transactionGroup.DELETE("/:id", DeleteTransactionHandler(db, nil))

	goalGroup := r.Group("/api/goals")
	goalGroup.Use(middleware.JWTAuthMiddleware(testSecret))
	goalGroup.GET("", ListGoalsHandler(db))
	goalGroup.POST("", CreateGoalHandler(db))
	goalGroup.DELETE("/:id", DeleteGoalHandler(db))

	return r
}

// doRequest performs a JSON request against the router, attaching the token
// header when one is given
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser registers a user through the API and returns their token
func registerUser(t *testing.T, r *gin.Engine, username, email string) string {
	t.Helper()
	w := doRequest(t, r, "POST", "/api/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, 200, w.Code, w.Body.String())
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
