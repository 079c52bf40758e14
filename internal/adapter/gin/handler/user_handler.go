package handler

import (
	"net/http"
	"strconv"

	"user-rest-service/internal/usecase/user"
	"user-rest-service/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations. It performs only
// presence/shape validation and delegates everything else to the usecase;
// failures are reported through gin's error list and rendered by the global
// error-handling middleware.
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest represents the HTTP request body for a partial update.
// Pointer fields distinguish "absent" from "explicitly empty".
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserResponse represents the HTTP response for user data.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MessageResponse represents a confirmation message body.
type MessageResponse struct {
	Message string `json:"message"`
}

// parseUserID validates the path id. The id must be a positive integer;
// non-numeric values and 0 are both rejected (0 was never addressable in the
// historical behavior, which tests pin down).
func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user request", zap.Error(err))
		_ = c.Error(err)
		c.Abort()
		return
	}

	if req.Name == "" || req.Email == "" {
		_ = c.Error(apierrors.NewBadRequest("Name and email are required"))
		c.Abort()
		return
	}

	created, err := h.uc.Create(c.Request.Context(), user.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		ID:    created.ID,
		Name:  created.Name,
		Email: created.Email,
	})
}

// GetUser handles GET /users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		h.log.Warn("invalid user id", zap.String("id", c.Param("id")))
		_ = c.Error(apierrors.NewBadRequest("User ID is required"))
		c.Abort()
		return
	}

	u, err := h.uc.GetOne(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	})
}

// GetUsers handles GET /users.
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.uc.GetAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateUser handles PATCH /users/:id. The body is checked before the path
// id, preserving the historical validation order.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update user request", zap.Error(err))
		_ = c.Error(err)
		c.Abort()
		return
	}

	if req.Name == nil && req.Email == nil {
		_ = c.Error(apierrors.NewBadRequest("At least one of name or email is required"))
		c.Abort()
		return
	}

	id, ok := parseUserID(c)
	if !ok {
		h.log.Warn("invalid user id", zap.String("id", c.Param("id")))
		_ = c.Error(apierrors.NewBadRequest("User ID is required"))
		c.Abort()
		return
	}

	updated, err := h.uc.Update(c.Request.Context(), id, user.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:    updated.ID,
		Name:  updated.Name,
		Email: updated.Email,
	})
}

// DeleteUser handles DELETE /users/:id.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		h.log.Warn("invalid user id", zap.String("id", c.Param("id")))
		_ = c.Error(apierrors.NewBadRequest("User ID is required"))
		c.Abort()
		return
	}

	res, err := h.uc.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: res.Message})
}
