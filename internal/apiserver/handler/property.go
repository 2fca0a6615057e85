package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/common/dto"
	"github.com/bllokusync/bllokusync/internal/i18n"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Property handles property management
type Property struct {
	db     database.Database
	logger *zap.Logger
}

// NewProperty creates a new property handler
func NewProperty(db database.Database, logger *zap.Logger) *Property {
	return &Property{db: db, logger: logger.Named("apiserver.handler.property")}
}

// ListProperties handles listing all properties
func (h *Property) ListProperties(c *gin.Context) {
	properties, err := h.db.ListProperties(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list properties", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetProperty handles fetching a single property
func (h *Property) GetProperty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	property, err := h.db.GetProperty(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorPropertyNotFound)
		return
	}
	c.JSON(http.StatusOK, property)
}

// CreateProperty handles property creation
func (h *Property) CreateProperty(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
		return
	}
	if req.FloorsFrom > req.FloorsTo {
		i18n.RespondWithError(c, i18n.ErrorPropertyFloorRange)
		return
	}

	now := time.Now()
	property := &database.Property{
		Name:       req.Name,
		Address:    req.Address,
		FloorsFrom: req.FloorsFrom,
		FloorsTo:   req.FloorsTo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.db.CreateProperty(c.Request.Context(), property); err != nil {
		h.logger.Error("failed to create property", zap.String("name", req.Name), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	h.logger.Info("property created", zap.Uint("property_id", property.ID), zap.String("name", property.Name))
	i18n.Created(i18n.SuccessPropertyCreated).With("id", property.ID).Send(c)
}

// UpdateProperty handles property updates
func (h *Property) UpdateProperty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
		return
	}
	if req.FloorsFrom > req.FloorsTo {
		i18n.RespondWithError(c, i18n.ErrorPropertyFloorRange)
		return
	}

	property, err := h.db.GetProperty(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorPropertyNotFound)
		return
	}

	property.Name = req.Name
	property.Address = req.Address
	property.FloorsFrom = req.FloorsFrom
	property.FloorsTo = req.FloorsTo
	property.UpdatedAt = time.Now()

	if err := h.db.UpdateProperty(c.Request.Context(), property); err != nil {
		h.logger.Error("failed to update property", zap.Uint("property_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	i18n.Success(i18n.SuccessPropertyUpdated).Send(c)
}

// DeleteProperty handles property deletion. A property still holding
// tenants cannot be deleted.
func (h *Property) DeleteProperty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if _, err := h.db.GetProperty(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrorPropertyNotFound)
		return
	}

	tenants, err := h.db.ListTenants(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}
	if len(tenants) > 0 {
		i18n.RespondWithError(c, i18n.ErrorPropertyHasTenants)
		return
	}

	if err := h.db.DeleteProperty(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete property", zap.Uint("property_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	h.logger.Info("property deleted", zap.Uint("property_id", id))
	i18n.Success(i18n.SuccessPropertyDeleted).Send(c)
}

// idParam parses the :id path parameter, responding with a bad request
// error when it is not a positive integer
func idParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", "invalid id: "+raw))
		return 0, false
	}
	return uint(id), true
}
