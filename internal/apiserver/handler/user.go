package handler

import (
	"net/http"
	"time"

	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/common/dto"
	"github.com/bllokusync/bllokusync/internal/i18n"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// User handles admin-only account management
type User struct {
	db     database.Database
	logger *zap.Logger
}

// NewUser creates a new user management handler
func NewUser(db database.Database, logger *zap.Logger) *User {
	return &User{db: db, logger: logger.Named("apiserver.handler.user")}
}

// ListUsers handles listing all user accounts
func (h *User) ListUsers(c *gin.Context) {
	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser handles account creation
func (h *User) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
		return
	}

	if _, err := h.db.GetUserByUsername(c.Request.Context(), req.Username); err == nil {
		i18n.RespondWithError(c, i18n.ErrorUsernameExists)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	now := time.Now()
	user := &database.User{
		Username:  req.Username,
		Password:  string(hashed),
		Role:      database.UserRole(req.Role),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	// A tenant account can be linked to its tenant record at creation time.
	if req.TenantID != nil && user.Role == database.RoleTenant {
		tenant, err := h.db.GetTenant(c.Request.Context(), *req.TenantID)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrorTenantNotFound)
			return
		}
		tenant.UserID = &user.ID
		tenant.UpdatedAt = now
		if err := h.db.UpdateTenant(c.Request.Context(), tenant); err != nil {
			h.logger.Error("failed to link tenant to user",
				zap.Uint("tenant_id", tenant.ID),
				zap.Uint("user_id", user.ID),
				zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
			return
		}
	}

	h.logger.Info("user created", zap.Uint("user_id", user.ID), zap.String("role", req.Role))
	i18n.Created(i18n.SuccessUserCreated).With("id", user.ID).Send(c)
}

// UpdateUser handles account updates keyed by username
func (h *User) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorUserNotFound)
		return
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
			return
		}
		user.Password = string(hashed)
	}
	if req.Role != "" {
		user.Role = database.UserRole(req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = time.Now()

	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("failed to update user", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	i18n.Success(i18n.SuccessUserUpdated).Send(c)
}

// DeleteUser handles account deletion by username
func (h *User) DeleteUser(c *gin.Context) {
	username := c.Param("username")
	user, err := h.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorUserNotFound)
		return
	}

	if err := h.db.DeleteUser(c.Request.Context(), user.ID); err != nil {
		h.logger.Error("failed to delete user", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	h.logger.Info("user deleted", zap.Uint("user_id", user.ID))
	i18n.Success(i18n.SuccessUserDeleted).Send(c)
}
