package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bllokusync/bllokusync/internal/apiserver/cache"
	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/common/cnst"
	"github.com/bllokusync/bllokusync/internal/common/dto"
	"github.com/bllokusync/bllokusync/internal/i18n"
	"github.com/bllokusync/bllokusync/internal/payment"
	"github.com/bllokusync/bllokusync/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Payment handles payment record endpoints: listing, reconciliation,
// status transitions and statistics
type Payment struct {
	db         database.Database
	reconciler *payment.Reconciler
	stats      *cache.StatsCache
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewPayment creates a new payment handler. Metrics may be nil.
func NewPayment(db database.Database, reconciler *payment.Reconciler, stats *cache.StatsCache, m *metrics.Metrics, logger *zap.Logger) *Payment {
	return &Payment{
		db:         db,
		reconciler: reconciler,
		stats:      stats,
		metrics:    m,
		logger:     logger.Named("apiserver.handler.payment"),
	}
}

// paymentFilterFromQuery builds a record filter from the request query.
// month accepts a 0-based month index and is combined with year into a
// canonical month key.
func paymentFilterFromQuery(c *gin.Context) (database.PaymentFilter, bool) {
	var filter database.PaymentFilter

	if raw := c.Query("property_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", "invalid property_id: "+raw))
			return filter, false
		}
		filter.PropertyID = uint(parsed)
	}
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", "invalid year: "+raw))
			return filter, false
		}
		filter.Year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil || filter.Year == 0 {
			i18n.RespondWithError(c, i18n.ErrorPaymentInvalidMonth)
			return filter, false
		}
		key, err := payment.MonthKey(filter.Year, idx)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrorPaymentInvalidMonth)
			return filter, false
		}
		filter.Months = []string{key}
		filter.Year = 0
	}
	if raw := c.Query("status"); raw != "" {
		if !cnst.ValidPaymentStatus(raw) {
			i18n.RespondWithError(c, i18n.ErrorPaymentInvalidStatus)
			return filter, false
		}
		filter.Status = raw
	}
	return filter, true
}

// ListPayments handles the manager-side record listing
func (h *Payment) ListPayments(c *gin.Context) {
	filter, ok := paymentFilterFromQuery(c)
	if !ok {
		return
	}

	records, err := h.db.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list payments", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}
	c.JSON(http.StatusOK, records)
}

// ListMyPayments handles the tenant-side record listing, scoped to the
// tenant record linked to the authenticated account
func (h *Payment) ListMyPayments(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	tenant, err := h.db.GetTenantByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorTenantNoRecord)
		return
	}

	records, err := h.db.ListPayments(c.Request.Context(), database.PaymentFilter{TenantID: tenant.ID})
	if err != nil {
		h.logger.Error("failed to list tenant payments", zap.Uint("tenant_id", tenant.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetStatistics handles the statistics projection, served from cache
// when a fresh projection for the same filter exists
func (h *Payment) GetStatistics(c *gin.Context) {
	filter, ok := paymentFilterFromQuery(c)
	if !ok {
		return
	}

	key := h.stats.Key(filter)
	if cached, hit := h.stats.Get(c.Request.Context(), key); hit {
		c.JSON(http.StatusOK, cached)
		return
	}

	records, err := h.db.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed to load payments for statistics", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	stats := payment.ComputeStatistics(records)
	h.stats.Set(c.Request.Context(), key, stats)
	c.JSON(http.StatusOK, stats)
}

// EnsurePayments handles the get-or-create reconciliation batch
func (h *Payment) EnsurePayments(c *gin.Context) {
	var req dto.EnsurePaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
		return
	}

	start := time.Now()
	result, err := h.reconciler.EnsureRecords(c.Request.Context(), payment.EnsureInput{
		TenantIDs:  req.TenantIDs,
		PropertyID: req.PropertyID,
		Year:       req.Year,
		Months:     req.Months,
	})
	if err != nil {
		if h.metrics != nil {
			h.metrics.EnsureBatchDone(start, 0, true)
		}
		h.logger.Error("ensure batch failed", zap.Uint("property_id", req.PropertyID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}
	if h.metrics != nil {
		h.metrics.EnsureBatchDone(start, result.NewRecords, false)
	}

	if result.NewRecords > 0 {
		h.stats.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusOK, result)
}

// BulkUpdatePayments handles the bulk status transition
func (h *Payment) BulkUpdatePayments(c *gin.Context) {
	var req dto.BulkUpdatePaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrorPaymentEmptyBatch)
		return
	}

	result, err := h.reconciler.BulkUpdateStatus(c.Request.Context(), req.IDs, req.Status)
	if err != nil {
		h.logger.Error("bulk status update failed", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	if len(result.Updated) > 0 {
		h.stats.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusOK, result)
}

// UpdatePaymentStatus handles a single record status transition
func (h *Payment) UpdatePaymentStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrorPaymentInvalidStatus)
		return
	}

	if _, err := h.db.GetPayment(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrorPaymentNotFound)
		return
	}

	result, err := h.reconciler.BulkUpdateStatus(c.Request.Context(), []uint{id}, req.Status)
	if err != nil {
		h.logger.Error("status update failed", zap.Uint("payment_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}
	if len(result.Missing) > 0 {
		i18n.RespondWithError(c, i18n.ErrorPaymentNotFound)
		return
	}

	h.stats.Invalidate(c.Request.Context())
	i18n.Success(i18n.SuccessPaymentStatusUpdated).Send(c)
}

// UpdatePaymentDate handles a payment date correction. An empty date
// clears the field.
func (h *Payment) UpdatePaymentDate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePaymentDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrorPaymentInvalidDate)
		return
	}

	record, err := h.db.GetPayment(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorPaymentNotFound)
		return
	}

	if req.Date == "" {
		record.PaymentDate = nil
	} else {
		record.PaymentDate = &req.Date
	}
	record.UpdatedAt = time.Now()

	if err := h.db.UpdatePayment(c.Request.Context(), record); err != nil {
		h.logger.Error("failed to update payment date", zap.Uint("payment_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	i18n.Success(i18n.SuccessPaymentDateUpdated).Send(c)
}

// DeletePayment handles explicit record deletion by a manager
func (h *Payment) DeletePayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if _, err := h.db.GetPayment(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrorPaymentNotFound)
		return
	}

	if err := h.db.DeletePayment(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete payment", zap.Uint("payment_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
		return
	}

	h.stats.Invalidate(c.Request.Context())
	h.logger.Info("payment deleted", zap.Uint("payment_id", id))
	i18n.Success(i18n.SuccessPaymentDeleted).Send(c)
}
