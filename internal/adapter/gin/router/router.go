package router

import (
	"net/http"

	"user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/adapter/gin/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin router with all routes and
// middleware. redisClient may be nil when rate limiting is disabled.
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimit middleware.RateLimiterConfig,
	redisClient *redis.Client,
	openAPIPath string,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Recovery outermost so panics anywhere in the chain still produce a
	// well-formed body; the error handler renders everything else.
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.RateLimiter(rateLimit, redisClient, log))
	router.Use(middleware.ErrorHandler(log))

	router.NoRoute(middleware.NoRouteHandler())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user-rest-service",
		})
	})

	// OpenAPI document and Swagger UI
	if openAPIPath != "" {
		router.StaticFile("/openapi/users.swagger.json", openAPIPath)
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/openapi/users.swagger.json"),
		)))
	}

	users := router.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.GetUsers)
		users.GET("/:id", userHandler.GetUser)
		users.PATCH("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return router
}
