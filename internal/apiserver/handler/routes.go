package handler

import (
	"net/http"

	"github.com/bllokusync/bllokusync/internal/apiserver/middleware"
	"github.com/bllokusync/bllokusync/internal/auth/jwt"
	"github.com/bllokusync/bllokusync/internal/common/cnst"
	"github.com/bllokusync/bllokusync/internal/i18n"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every API handler for route registration
type Handlers struct {
	Auth          *Auth
	User          *User
	Property      *Property
	Tenant        *Tenant
	Payment       *Payment
	Submission    *Submission
	MonthlyReport *MonthlyReport
}

// RegisterRoutes wires the full REST surface onto the engine
func RegisterRoutes(r *gin.Engine, jwtService *jwt.Service, h *Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(func(c *gin.Context) {
		i18n.RespondWithError(c, i18n.ErrNotFound)
	})

	api := r.Group("/api", middleware.I18nMiddleware())
	api.POST("/auth/login", h.Auth.Login)

	auth := api.Group("", middleware.JWTAuthMiddleware(jwtService))
	auth.GET("/auth/me", h.Auth.Me)
	auth.POST("/auth/change-password", h.Auth.ChangePassword)

	// Tenant-facing routes
	auth.GET("/payments/mine", h.Payment.ListMyPayments)
	auth.GET("/monthly-reports/property/:id", h.MonthlyReport.ListByProperty)
	registerTenantSubmissionRoutes(auth, h.Submission, "/complaints", cnst.KindComplaint)
	registerTenantSubmissionRoutes(auth, h.Submission, "/suggestions", cnst.KindSuggestion)
	registerTenantSubmissionRoutes(auth, h.Submission, "/reports", cnst.KindReport)

	// Manager-facing routes
	admin := auth.Group("", AdminAuthMiddleware())

	admin.GET("/properties", h.Property.ListProperties)
	admin.POST("/properties", h.Property.CreateProperty)
	admin.GET("/properties/:id", h.Property.GetProperty)
	admin.PUT("/properties/:id", h.Property.UpdateProperty)
	admin.DELETE("/properties/:id", h.Property.DeleteProperty)

	admin.GET("/users/tenants", h.Tenant.ListTenants)
	admin.POST("/tenants", h.Tenant.CreateTenant)
	admin.PUT("/tenants/:id", h.Tenant.UpdateTenant)
	admin.DELETE("/tenants/:id", h.Tenant.DeleteTenant)

	admin.GET("/payments", h.Payment.ListPayments)
	admin.GET("/payments/statistics", h.Payment.GetStatistics)
	admin.POST("/payments/ensure", h.Payment.EnsurePayments)
	admin.POST("/payments/bulk-status", h.Payment.BulkUpdatePayments)
	admin.PATCH("/payments/:id/status", h.Payment.UpdatePaymentStatus)
	admin.PATCH("/payments/:id/date", h.Payment.UpdatePaymentDate)
	admin.DELETE("/payments/:id", h.Payment.DeletePayment)

	registerManagerSubmissionRoutes(admin, h.Submission, "/complaints", cnst.KindComplaint)
	registerManagerSubmissionRoutes(admin, h.Submission, "/suggestions", cnst.KindSuggestion)
	registerManagerSubmissionRoutes(admin, h.Submission, "/reports", cnst.KindReport)

	admin.GET("/monthly-reports", h.MonthlyReport.ListReports)
	admin.POST("/monthly-reports", h.MonthlyReport.CreateReport)
	admin.GET("/monthly-reports/:id", h.MonthlyReport.GetReport)
	admin.DELETE("/monthly-reports/:id", h.MonthlyReport.DeleteReport)

	admin.GET("/users", h.User.ListUsers)
	admin.POST("/users", h.User.CreateUser)
	admin.PUT("/users", h.User.UpdateUser)
	admin.DELETE("/users/:username", h.User.DeleteUser)
}

func registerTenantSubmissionRoutes(g *gin.RouterGroup, h *Submission, prefix string, kind cnst.SubmissionKind) {
	g.GET(prefix+"/mine", h.ListMine(kind))
	g.POST(prefix, h.Create(kind))
}

func registerManagerSubmissionRoutes(g *gin.RouterGroup, h *Submission, prefix string, kind cnst.SubmissionKind) {
	g.GET(prefix+"/manager", h.ListManager(kind))
	g.PATCH(prefix+"/:id/status", h.UpdateStatus(kind))
	g.POST(prefix+"/archive", h.Archive(kind))
}
