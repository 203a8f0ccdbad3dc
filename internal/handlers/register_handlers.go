package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/middleware"
	"github.com/SscSPs/agency_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(wireFieldName)
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerTransactionRoutes(v1, service.Transaction)
	registerAccountRoutes(v1, service.Account, service.Transfer)
	registerEmployeeRoutes(v1, service.Employee)
	registerCollaboratorRoutes(v1, service.Collaborator)
	registerCustomerRoutes(v1, service.Customer)
	registerSettingsRoutes(v1, service.Settings)
	registerAuditRoutes(v1, service.Audit)
	registerBackupRoutes(v1, service.Backup)
}
