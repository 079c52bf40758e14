package user

import (
	"context"

	domain "user-rest-service/internal/domain/user"
)

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetOne(ctx context.Context, id int64) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) (*DeleteUserResult, error)
}
