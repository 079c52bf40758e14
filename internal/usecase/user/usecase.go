package user

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "user-rest-service/internal/domain/user"
	"user-rest-service/pkg/apierrors"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (e.g., PostgreSQL, SQLite) to be used interchangeably.
//
// The finder methods return (nil, nil) when no record matches; errors are
// reserved for store-level failures, which the usecase propagates unchanged.
type Repository interface {
	FindByName(ctx context.Context, name string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)

	// Create inserts a new record and returns it with its assigned ID.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	// Upsert writes a record keyed by ID, inserting or updating as needed.
	Upsert(ctx context.Context, u *domain.User) error
	// Remove deletes the given record.
	Remove(ctx context.Context, u *domain.User) error
	// Flush durably commits any pending writes.
	Flush(ctx context.Context) error
}

// Service implements the business rules for user management: uniqueness
// enforcement, existence checks, and orchestration of repository calls.
// It raises only Conflict and ResourceNotFound itself; repository failures
// bubble up unwrapped.
type Service struct {
	repo Repository  // Repository for data access
	log  *zap.Logger // Logger for structured logging
}

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log}
}

// Create creates a new user after checking that neither the name nor the
// email is already taken. The name check runs first; when it fails, the
// email lookup is never issued.
func (s *Service) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	s.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	byName, err := s.repo.FindByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if byName != nil {
		s.log.Warn("name already exists", zap.String("name", in.Name))
		return nil, apierrors.NewConflict(fmt.Sprintf("User with this name %s already exists", in.Name))
	}

	byEmail, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if byEmail != nil {
		s.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apierrors.NewConflict(fmt.Sprintf("User with this email %s already exists", in.Email))
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	s.log.Info("user created", zap.Int64("id", created.ID))
	return created, nil
}

// GetOne retrieves a user by ID.
func (s *Service) GetOne(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("failed to get user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if u == nil {
		s.log.Warn("user not found", zap.Int64("id", id))
		return nil, apierrors.NewResourceNotFound(fmt.Sprintf("User with ID %d not found", id))
	}
	return u, nil
}

// GetAll retrieves all user records. Ordering is store-defined.
func (s *Service) GetAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// Update merges the supplied fields onto the existing record, persists the
// result with upsert semantics, then re-reads by ID and returns the freshly
// persisted record rather than trusting the write path's echo.
func (s *Service) Update(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error) {
	s.log.Info("updating user", zap.Int64("id", id))

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("failed to fetch user for update", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if existing == nil {
		s.log.Warn("user not found for update", zap.Int64("id", id))
		return nil, apierrors.NewResourceNotFound(fmt.Sprintf("User with ID %d not found", id))
	}

	if in.Name != nil {
		existing.Name = *in.Name
	}
	if in.Email != nil {
		existing.Email = *in.Email
	}

	if err := s.repo.Upsert(ctx, existing); err != nil {
		s.log.Error("failed to upsert user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("failed to re-read user after update", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	s.log.Info("user updated", zap.Int64("id", id))
	return updated, nil
}

// Delete removes the user with the given ID and durably flushes the removal.
func (s *Service) Delete(ctx context.Context, id int64) (*DeleteUserResult, error) {
	s.log.Info("deleting user", zap.Int64("id", id))

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("failed to fetch user for delete", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if existing == nil {
		s.log.Warn("user not found for delete", zap.Int64("id", id))
		return nil, apierrors.NewResourceNotFound(fmt.Sprintf("User with ID %d not found", id))
	}

	if err := s.repo.Remove(ctx, existing); err != nil {
		s.log.Error("failed to remove user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if err := s.repo.Flush(ctx); err != nil {
		s.log.Error("failed to flush removal", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	s.log.Info("user deleted", zap.Int64("id", id))
	return &DeleteUserResult{
		Message: fmt.Sprintf("User with ID %d has been deleted", id),
	}, nil
}
