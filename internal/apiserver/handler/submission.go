package handler

import (
	"net/http"
	"time"

	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/common/cnst"
	"github.com/bllokusync/bllokusync/internal/common/dto"
	"github.com/bllokusync/bllokusync/internal/i18n"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Submission handles the complaint, suggestion and report workflow.
// The three families share one handler; the kind is fixed per route
// group at registration time.
type Submission struct {
	db     database.Database
	logger *zap.Logger
}

// NewSubmission creates a new submission handler
func NewSubmission(db database.Database, logger *zap.Logger) *Submission {
	return &Submission{db: db, logger: logger.Named("apiserver.handler.submission")}
}

// ListManager returns the manager-side listing of one kind. Archived
// items are excluded unless archived=true is passed.
func (h *Submission) ListManager(kind cnst.SubmissionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := database.SubmissionFilter{
			Kind:         kind,
			Status:       c.Query("status"),
			ArchivedOnly: c.Query("archived") == "true",
		}
		if filter.Status != "" && !cnst.ValidSubmissionStatus(filter.Status) {
			i18n.RespondWithError(c, i18n.ErrorSubmissionInvalidStatus)
			return
		}

		items, err := h.db.ListSubmissions(c.Request.Context(), filter)
		if err != nil {
			h.logger.Error("failed to list submissions", zap.String("kind", string(kind)), zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// ListMine returns the authenticated tenant's own submissions of one kind
func (h *Submission) ListMine(kind cnst.SubmissionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := h.tenantFromClaims(c)
		if !ok {
			return
		}

		items, err := h.db.ListSubmissions(c.Request.Context(), database.SubmissionFilter{
			Kind:     kind,
			TenantID: tenant.ID,
		})
		if err != nil {
			h.logger.Error("failed to list tenant submissions",
				zap.String("kind", string(kind)),
				zap.Uint("tenant_id", tenant.ID),
				zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// Create files a new submission of one kind for the authenticated tenant
func (h *Submission) Create(kind cnst.SubmissionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateSubmissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			i18n.RespondWithError(c, i18n.ErrorSubmissionTitleRequired)
			return
		}

		tenant, ok := h.tenantFromClaims(c)
		if !ok {
			return
		}

		now := time.Now()
		submission := &database.Submission{
			Kind:        kind,
			TenantID:    tenant.ID,
			PropertyID:  req.PropertyID,
			Title:       req.Title,
			Description: req.Description,
			Status:      string(cnst.SubmissionPending),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := h.db.CreateSubmission(c.Request.Context(), submission); err != nil {
			h.logger.Error("failed to create submission", zap.String("kind", string(kind)), zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
			return
		}

		h.logger.Info("submission created",
			zap.String("kind", string(kind)),
			zap.Uint("submission_id", submission.ID),
			zap.Uint("tenant_id", tenant.ID))
		i18n.Created(i18n.SuccessSubmissionCreated).With("id", submission.ID).Send(c)
	}
}

// UpdateStatus transitions a submission to any workflow state. The
// status field is a flat enum; every transition is allowed.
func (h *Submission) UpdateStatus(kind cnst.SubmissionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req dto.UpdateSubmissionStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			i18n.RespondWithError(c, i18n.ErrorSubmissionInvalidStatus)
			return
		}

		submission, err := h.db.GetSubmission(c.Request.Context(), kind, id)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrorSubmissionNotFound)
			return
		}

		submission.Status = req.Status
		if req.Response != "" {
			submission.Response = req.Response
		}
		submission.UpdatedAt = time.Now()

		if err := h.db.UpdateSubmission(c.Request.Context(), submission); err != nil {
			h.logger.Error("failed to update submission status",
				zap.String("kind", string(kind)),
				zap.Uint("submission_id", id),
				zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
			return
		}

		i18n.Success(i18n.SuccessStatusUpdated).Send(c)
	}
}

// Archive sets the one-way archived flag on a batch of submissions.
// Archived items disappear from default listings but are never deleted.
func (h *Submission) Archive(kind cnst.SubmissionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ArchiveSubmissionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
			return
		}

		archived, err := h.db.ArchiveSubmissions(c.Request.Context(), kind, req.IDs)
		if err != nil {
			h.logger.Error("failed to archive submissions",
				zap.String("kind", string(kind)),
				zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", err.Error()))
			return
		}

		h.logger.Info("submissions archived",
			zap.String("kind", string(kind)),
			zap.Int64("archived", archived))
		i18n.Success(i18n.SuccessArchived).WithPayload(dto.ArchiveSubmissionsResponse{Archived: archived}).Send(c)
	}
}

// tenantFromClaims resolves the tenant record linked to the
// authenticated account, responding with an error when there is none
func (h *Submission) tenantFromClaims(c *gin.Context) (*database.Tenant, bool) {
	claims, ok := claimsFromContext(c)
	if !ok {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return nil, false
	}

	tenant, err := h.db.GetTenantByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorTenantNoRecord)
		return nil, false
	}
	return tenant, true
}
