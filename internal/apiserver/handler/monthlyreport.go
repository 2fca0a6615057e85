package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/common/dto"
	"github.com/bllokusync/bllokusync/internal/i18n"
	"github.com/bllokusync/bllokusync/internal/payment"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MonthlyReport handles per-property budget summaries
type MonthlyReport struct {
	db     database.Database
	logger *zap.Logger
}

// NewMonthlyReport creates a new monthly report handler
func NewMonthlyReport(db database.Database, logger *zap.Logger) *MonthlyReport {
	return &MonthlyReport{db: db, logger: logger.Named("apiserver.handler.monthlyreport")}
}

// ListReports handles listing reports, optionally filtered by property
func (h *MonthlyReport) ListReports(c *gin.Context) {
	var propertyID uint
	if raw := c.Query("property_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", "invalid property_id: "+raw))
			return
		}
		propertyID = uint(parsed)
	}

	reports, err := h.db.ListMonthlyReports(c.Request.Context(), propertyID)
	if err != nil {
		h.logger.Error("failed to list monthly reports", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}
	c.JSON(http.StatusOK, reports)
}

// ListByProperty handles the tenant-facing listing for one property
func (h *MonthlyReport) ListByProperty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	reports, err := h.db.ListMonthlyReports(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to list monthly reports", zap.Uint("property_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}
	c.JSON(http.StatusOK, reports)
}

// GetReport handles fetching a single report with its breakdown
func (h *MonthlyReport) GetReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	report, err := h.db.GetMonthlyReport(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorMonthlyReportNotFound)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CreateReport handles report creation. The month must be a canonical
// first-of-month key.
func (h *MonthlyReport) CreateReport(c *gin.Context) {
	var req dto.CreateMonthlyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
		return
	}
	if _, err := payment.MonthIndex(req.Month); err != nil {
		i18n.RespondWithError(c, i18n.ErrorMonthlyReportMonth)
		return
	}

	if _, err := h.db.GetProperty(c.Request.Context(), req.PropertyID); err != nil {
		i18n.RespondWithError(c, i18n.ErrorPropertyNotFound)
		return
	}

	now := time.Now()
	report := &database.MonthlyReport{
		PropertyID:  req.PropertyID,
		Month:       req.Month,
		TotalBudget: req.TotalBudget,
		TotalSpent:  req.TotalSpent,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, line := range req.Breakdown {
		report.Breakdown = append(report.Breakdown, &database.SpendingBreakdown{
			Category:        line.Category,
			AllocatedAmount: line.AllocatedAmount,
			Percentage:      line.Percentage,
		})
	}

	if err := h.db.CreateMonthlyReport(c.Request.Context(), report); err != nil {
		h.logger.Error("failed to create monthly report",
			zap.Uint("property_id", req.PropertyID),
			zap.String("month", req.Month),
			zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	h.logger.Info("monthly report created",
		zap.Uint("report_id", report.ID),
		zap.Uint("property_id", report.PropertyID),
		zap.String("month", report.Month))
	i18n.Created(i18n.SuccessMonthlyReportCreated).With("id", report.ID).Send(c)
}

// DeleteReport handles report deletion, including its breakdown lines
func (h *MonthlyReport) DeleteReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if _, err := h.db.GetMonthlyReport(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrorMonthlyReportNotFound)
		return
	}

	if err := h.db.DeleteMonthlyReport(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete monthly report", zap.Uint("report_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	h.logger.Info("monthly report deleted", zap.Uint("report_id", id))
	i18n.Success(i18n.SuccessMonthlyReportDeleted).Send(c)
}
