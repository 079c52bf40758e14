package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-rest-service/internal/domain/user"
)

// UserRepo implements the usecase Repository interface with GORM.
// It works against any GORM dialect; the service runs it on PostgreSQL in
// production and SQLite in development and tests.
type UserRepo struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Name  string `gorm:"not null;uniqueIndex"`     // User's name (required, unique)
	Email string `gorm:"not null;uniqueIndex"`     // User's email address (required, unique)
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m *UserSchema) toDomain() *user.User {
	return &user.User{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
	}
}

// FindByName retrieves a user by name. Returns (nil, nil) when no record
// matches.
func (r *UserRepo) FindByName(ctx context.Context, name string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to get user by name from db", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}
	return model.toDomain(), nil
}

// FindByEmail retrieves a user by email address. Returns (nil, nil) when no
// record matches.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return model.toDomain(), nil
}

// FindByID retrieves a user by their unique ID. Returns (nil, nil) when no
// record matches; the caller owns not-found semantics.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return model.toDomain(), nil
}

// FindAll retrieves every user record. Ordering is whatever the store
// returns.
func (r *UserRepo) FindAll(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = *model.toDomain()
	}
	return users, nil
}

// Create inserts a new user and returns it with its assigned ID.
func (r *UserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:  u.Name,
		Email: u.Email,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// Upsert writes the record keyed by ID, inserting or updating as needed.
func (r *UserRepo) Upsert(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	model := UserSchema{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		r.log.Error("failed to upsert user in db", zap.Error(err), zap.Int64("id", u.ID))
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	r.log.Info("user upserted in db", zap.Int64("id", model.ID))
	return nil
}

// Remove deletes the given record by ID.
func (r *UserRepo) Remove(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	if err := r.db.WithContext(ctx).Delete(&UserSchema{}, u.ID).Error; err != nil {
		r.log.Error("failed to delete user in db", zap.Error(err), zap.Int64("id", u.ID))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	r.log.Info("user deleted in db", zap.Int64("id", u.ID))
	return nil
}

// Flush durably commits pending writes. GORM autocommits each statement, so
// this is a no-op; it exists for stores with deferred write semantics.
func (r *UserRepo) Flush(ctx context.Context) error {
	return nil
}

// Migrate creates or updates the users table schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserSchema{})
}
