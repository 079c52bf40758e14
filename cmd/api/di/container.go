package di

import (
	"fmt"

	"user-rest-service/cmd/api/infrastructure"
	ginhandler "user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/adapter/repository"
	"user-rest-service/internal/config"
	"user-rest-service/internal/usecase/user"
	redisclient "user-rest-service/pkg/redis"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies, built once at startup by
// explicit constructor injection: store into service, service into handler.
// There is no runtime lookup and no global state.
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	UserUC      user.Usecase
	UserHandler *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies.
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis backs only the rate limiter; skip the connection entirely when
	// rate limiting is off.
	var rdb *redisclient.Client
	if cfg.RateLimit.Enabled {
		rdb, err = redisclient.NewClient(redisclient.Config{
			Host:        cfg.Redis.Host,
			Port:        cfg.Redis.Port,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			MaxRetries:  cfg.Redis.MaxRetries,
			PoolSize:    cfg.Redis.PoolSize,
			MinIdleConn: cfg.Redis.MinIdleConn,
		}, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
	}

	repo := repository.NewUserRepo(db, l)
	userUC := user.New(repo, l)
	userHandler := ginhandler.NewUserHandler(userUC, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		UserUC:      userUC,
		UserHandler: userHandler,
	}, nil
}

// Close closes all resources held by the container.
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
