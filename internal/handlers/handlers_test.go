package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskman-api/internal/middleware"
	"github.com/yukikurage/taskman-api/internal/models"
	"github.com/yukikurage/taskman-api/internal/repository"
	"github.com/yukikurage/taskman-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires the full stack over an in-memory database so handler tests
// exercise routing, middleware, services, and repositories together.
type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	taskService *services.TaskService
}

func newTestEnv() (*testEnv, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}, &models.AccessToken{}, &models.Task{}); err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokenRepo)
	taskService := services.NewTaskService(taskRepo)

	authHandler := NewAuthHandler(authService)
	taskHandler := NewTaskHandler(taskService)
	adminHandler := NewAdminHandler(taskService, authService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(authService))
		{
			authed.POST("/logout", authHandler.Logout)
			authed.GET("/me", authHandler.GetCurrentUser)
			authed.PUT("/me", authHandler.UpdateProfile)
			authed.DELETE("/me", authHandler.DeleteAccount)
			authed.GET("/users", authHandler.ListUsers)

			authed.GET("/tasks", taskHandler.ListTasks)
			authed.POST("/tasks", taskHandler.CreateTask)
			authed.GET("/tasks/:id", taskHandler.GetTask)
			authed.PUT("/tasks/:id", taskHandler.UpdateTask)
			authed.DELETE("/tasks/:id", taskHandler.DeleteTask)
		}

		api.DELETE("/tasks/all", adminHandler.DeleteAllTasks)
		api.DELETE("/users/all", adminHandler.DeleteAllUsers)
	}

	return &testEnv{
		db:          db,
		router:      router,
		authService: authService,
		taskService: taskService,
	}, nil
}

func (e *testEnv) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		sqlDB.Close()
	}
}

// request performs an HTTP request against the test router. A non-empty token
// is sent as a bearer credential.
func (e *testEnv) request(method, url, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user through the service layer and returns it
// with a valid bearer token.
func (e *testEnv) registerAndLogin(name, email, password string) (*models.User, string, error) {
	user, err := e.authService.Register(services.RegisterInput{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: password,
	})
	if err != nil {
		return nil, "", err
	}

	_, token, err := e.authService.Login(services.LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func decodeJSON(w *httptest.ResponseRecorder) (map[string]interface{}, error) {
	var body map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	return body, err
}

func decodeJSONList(w *httptest.ResponseRecorder) ([]map[string]interface{}, error) {
	var body []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	return body, err
}
