package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/adapter/gin/middleware"
	"user-rest-service/internal/adapter/gin/router"
	"user-rest-service/internal/adapter/repository"
	"user-rest-service/internal/usecase/user"
)

// UserAPIIntegrationTestSuite exercises the full stack: router, middleware,
// handler, usecase and the GORM repository over an in-memory SQLite store.
type UserAPIIntegrationTestSuite struct {
	suite.Suite
	engine *gin.Engine
}

func (suite *UserAPIIntegrationTestSuite) SetupTest() {
	log := zaptest.NewLogger(suite.T())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(repository.Migrate(db))

	repo := repository.NewUserRepo(db, log)
	uc := user.New(repo, log)
	h := handler.NewUserHandler(uc, log)

	suite.engine = router.SetupRouter(h, middleware.RateLimiterConfig{}, nil, "", log)
}

func (suite *UserAPIIntegrationTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.engine.ServeHTTP(w, req)
	return w
}

func (suite *UserAPIIntegrationTestSuite) decodeUser(w *httptest.ResponseRecorder) handler.UserResponse {
	var u handler.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &u))
	return u
}

// TestUserLifecycle runs the full create / read / update / delete scenario.
func (suite *UserAPIIntegrationTestSuite) TestUserLifecycle() {
	// Create
	w := suite.do("POST", "/users", map[string]string{"name": "Alice", "email": "alice@x.com"})
	suite.Equal(http.StatusCreated, w.Code)
	created := suite.decodeUser(w)
	suite.Equal(int64(1), created.ID)
	suite.Equal("Alice", created.Name)
	suite.Equal("alice@x.com", created.Email)

	// Duplicate name conflicts
	w = suite.do("POST", "/users", map[string]string{"name": "Alice", "email": "other@x.com"})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "User with this name Alice already exists")

	// Duplicate email conflicts
	w = suite.do("POST", "/users", map[string]string{"name": "Bob", "email": "alice@x.com"})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "User with this email alice@x.com already exists")

	// Read back
	w = suite.do("GET", fmt.Sprintf("/users/%d", created.ID), nil)
	suite.Equal(http.StatusOK, w.Code)
	got := suite.decodeUser(w)
	suite.Equal(created, got)

	// Partial update keeps the name
	w = suite.do("PATCH", fmt.Sprintf("/users/%d", created.ID), map[string]string{"email": "alice2@x.com"})
	suite.Equal(http.StatusOK, w.Code)
	updated := suite.decodeUser(w)
	suite.Equal("Alice", updated.Name)
	suite.Equal("alice2@x.com", updated.Email)

	// Delete
	w = suite.do("DELETE", fmt.Sprintf("/users/%d", created.ID), nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), fmt.Sprintf("User with ID %d has been deleted", created.ID))

	// Gone afterwards
	w = suite.do("GET", fmt.Sprintf("/users/%d", created.ID), nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), fmt.Sprintf("User with ID %d not found", created.ID))
}

func (suite *UserAPIIntegrationTestSuite) TestListUsers() {
	w := suite.do("GET", "/users", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())

	suite.do("POST", "/users", map[string]string{"name": "Alice", "email": "alice@x.com"})
	suite.do("POST", "/users", map[string]string{"name": "Bob", "email": "bob@x.com"})

	w = suite.do("GET", "/users", nil)
	suite.Equal(http.StatusOK, w.Code)

	var users []handler.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &users))
	suite.Len(users, 2)

	// Idempotent with no intervening writes
	w2 := suite.do("GET", "/users", nil)
	suite.JSONEq(w.Body.String(), w2.Body.String())
}

func (suite *UserAPIIntegrationTestSuite) TestValidationFailures() {
	// Missing fields on create
	w := suite.do("POST", "/users", map[string]string{"name": "Alice"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Name and email are required")

	// Empty patch
	suite.do("POST", "/users", map[string]string{"name": "Alice", "email": "alice@x.com"})
	w = suite.do("PATCH", "/users/1", map[string]string{})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "At least one of name or email is required")

	// Zero id is rejected as missing
	w = suite.do("GET", "/users/0", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "User ID is required")

	// Unparseable body
	req := httptest.NewRequest("POST", "/users", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.engine.ServeHTTP(rec, req)
	suite.Equal(http.StatusUnprocessableEntity, rec.Code)
	suite.Contains(rec.Body.String(), "Validation Failed")
}

func (suite *UserAPIIntegrationTestSuite) TestNoRoute() {
	w := suite.do("GET", "/teams", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"message":"No Route Found"}`, w.Body.String())
}

func (suite *UserAPIIntegrationTestSuite) TestHealth() {
	w := suite.do("GET", "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "healthy")
}

func TestUserAPIIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserAPIIntegrationTestSuite))
}
