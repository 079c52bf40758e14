package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"user-rest-service/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func setupErrorRouter(t *testing.T, err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(zaptest.NewLogger(t)))
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(err)
		c.Abort()
	})
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandler_ValidationError(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
	}
	vErr := validator.New().Struct(payload{Email: "not-an-email"})
	assert.Error(t, vErr)

	r := setupErrorRouter(t, vErr)
	w := get(r, "/boom")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp ValidationFailedResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation Failed", resp.Message)
	assert.Contains(t, resp.Details, "Email")
}

func TestErrorHandler_MalformedJSONBody(t *testing.T) {
	var target struct{ Name string }
	jsonErr := json.Unmarshal([]byte(`{"name":`), &target)
	assert.Error(t, jsonErr)

	r := setupErrorRouter(t, jsonErr)
	w := get(r, "/boom")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Validation Failed")
}

func TestErrorHandler_HTTPError(t *testing.T) {
	r := setupErrorRouter(t, apierrors.NewHTTPError(http.StatusBadGateway, "upstream unavailable"))
	w := get(r, "/boom")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"message":"upstream unavailable"}`, w.Body.String())
}

func TestErrorHandler_DomainAPIError(t *testing.T) {
	r := setupErrorRouter(t, apierrors.NewConflict("User with this name Alice already exists"))
	w := get(r, "/boom")

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp APIErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Conflict", resp.Title)
	assert.Equal(t, "User with this name Alice already exists", resp.Message)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.NotEmpty(t, resp.StackTrace)
}

func TestErrorHandler_UnknownErrorIsGeneric500(t *testing.T) {
	r := setupErrorRouter(t, errors.New("pq: connection reset by peer"))
	w := get(r, "/boom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"An internal server error occurred"}`, w.Body.String())
	// The raw store error never leaks to the client.
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestErrorHandler_NoErrorPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(zaptest.NewLogger(t)))
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := get(r, "/ok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNoRouteHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(NoRouteHandler())

	w := get(r, "/nope")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"No Route Found"}`, w.Body.String())
}

func TestRecovery_PanicBecomesGeneric500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(zaptest.NewLogger(t)))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := get(r, "/panic")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"An internal server error occurred"}`, w.Body.String())
}
