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

// Tenant handles tenant roster management
type Tenant struct {
	db     database.Database
	logger *zap.Logger
}

// NewTenant creates a new tenant handler
func NewTenant(db database.Database, logger *zap.Logger) *Tenant {
	return &Tenant{db: db, logger: logger.Named("apiserver.handler.tenant")}
}

// ListTenants handles listing tenants, optionally filtered by property
func (h *Tenant) ListTenants(c *gin.Context) {
	var propertyID uint
	if raw := c.Query("property_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", "invalid property_id: "+raw))
			return
		}
		propertyID = uint(parsed)
	}

	tenants, err := h.db.ListTenants(c.Request.Context(), propertyID)
	if err != nil {
		h.logger.Error("failed to list tenants", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// CreateTenant handles tenant registration. The floor must fall inside
// the property's floor range.
func (h *Tenant) CreateTenant(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
		return
	}

	property, err := h.db.GetProperty(c.Request.Context(), req.PropertyID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorPropertyNotFound)
		return
	}
	if req.Floor < property.FloorsFrom || req.Floor > property.FloorsTo {
		i18n.RespondWithError(c, i18n.ErrorTenantFloorInvalid.WithParam("Floor", req.Floor))
		return
	}

	now := time.Now()
	tenant := &database.Tenant{
		UserID:         req.UserID,
		PropertyID:     req.PropertyID,
		FullName:       req.FullName,
		ApartmentLabel: req.ApartmentLabel,
		Floor:          req.Floor,
		MonthlyRate:    req.MonthlyRate,
		Phone:          req.Phone,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := h.db.CreateTenant(c.Request.Context(), tenant); err != nil {
		h.logger.Error("failed to create tenant", zap.String("name", req.FullName), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	h.logger.Info("tenant created",
		zap.Uint("tenant_id", tenant.ID),
		zap.Uint("property_id", tenant.PropertyID))
	i18n.Created(i18n.SuccessTenantCreated).With("id", tenant.ID).Send(c)
}

// UpdateTenant handles tenant updates. MonthlyRate can be cleared by
// sending null; a cleared rate makes the tenant ineligible for payment
// record creation.
func (h *Tenant) UpdateTenant(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
		return
	}

	tenant, err := h.db.GetTenant(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorTenantNotFound)
		return
	}

	property, err := h.db.GetProperty(c.Request.Context(), tenant.PropertyID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorPropertyNotFound)
		return
	}
	if req.Floor < property.FloorsFrom || req.Floor > property.FloorsTo {
		i18n.RespondWithError(c, i18n.ErrorTenantFloorInvalid.WithParam("Floor", req.Floor))
		return
	}

	tenant.FullName = req.FullName
	tenant.ApartmentLabel = req.ApartmentLabel
	tenant.Floor = req.Floor
	tenant.MonthlyRate = req.MonthlyRate
	tenant.Phone = req.Phone
	if req.IsActive != nil {
		tenant.IsActive = *req.IsActive
	}
	tenant.UpdatedAt = time.Now()

	if err := h.db.UpdateTenant(c.Request.Context(), tenant); err != nil {
		h.logger.Error("failed to update tenant", zap.Uint("tenant_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	i18n.Success(i18n.SuccessTenantUpdated).Send(c)
}

// DeleteTenant handles tenant removal
func (h *Tenant) DeleteTenant(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if _, err := h.db.GetTenant(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrorTenantNotFound)
		return
	}

	if err := h.db.DeleteTenant(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete tenant", zap.Uint("tenant_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	h.logger.Info("tenant deleted", zap.Uint("tenant_id", id))
	i18n.Success(i18n.SuccessTenantDeleted).Send(c)
}
