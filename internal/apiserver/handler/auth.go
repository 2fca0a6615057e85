package handler

import (
	"net/http"
	"time"

	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/auth/jwt"
	"github.com/bllokusync/bllokusync/internal/common/dto"
	"github.com/bllokusync/bllokusync/internal/i18n"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Auth handles authentication and account management
type Auth struct {
	db         database.Database
	jwtService *jwt.Service
	logger     *zap.Logger
}

// NewAuth creates a new authentication handler
func NewAuth(db database.Database, jwtService *jwt.Service, logger *zap.Logger) *Auth {
	return &Auth{
		db:         db,
		jwtService: jwtService,
		logger:     logger.Named("apiserver.handler.auth"),
	}
}

// Login handles user login
func (h *Auth) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrorUserNamePasswordRequired)
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		h.logger.Warn("login with unknown username",
			zap.String("username", req.Username),
			zap.String("remote_addr", c.ClientIP()))
		i18n.RespondWithError(c, i18n.ErrorInvalidCredentials)
		return
	}

	if !user.IsActive {
		i18n.RespondWithError(c, i18n.ErrorUserDisabled)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		h.logger.Warn("login with wrong password",
			zap.String("username", req.Username),
			zap.String("remote_addr", c.ClientIP()))
		i18n.RespondWithError(c, i18n.ErrorInvalidCredentials)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	h.logger.Info("user logged in",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)))

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User: dto.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Role:     string(user.Role),
		},
	})
}

// Me returns the authenticated user's profile
func (h *Auth) Me(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), claims.Username)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorUserNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
}

// ChangePassword handles password change requests
func (h *Auth) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
		return
	}

	claims, ok := claimsFromContext(c)
	if !ok {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), claims.Username)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorUserNotFound)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		i18n.RespondWithError(c, i18n.ErrorInvalidOldPassword)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	user.Password = string(hashed)
	user.UpdatedAt = time.Now()
	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("failed to update password", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	h.logger.Info("password changed", zap.Uint("user_id", user.ID))
	i18n.Success(i18n.SuccessPasswordChanged).Send(c)
}

// claimsFromContext extracts the validated JWT claims set by the auth middleware
func claimsFromContext(c *gin.Context) (*jwt.Claims, bool) {
	raw, exists := c.Get("claims")
	if !exists {
		return nil, false
	}
	claims, ok := raw.(*jwt.Claims)
	return claims, ok
}

// AdminAuthMiddleware creates a middleware that checks if the user has admin role
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			i18n.RespondWithError(c, i18n.ErrUnauthorized)
			c.Abort()
			return
		}
		if claims.Role != database.RoleAdmin {
			i18n.RespondWithError(c, i18n.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
