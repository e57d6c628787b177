package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/paperledger/paper_ledger_app/cmd/docs"
	portssvc "github.com/paperledger/paper_ledger_app/internal/core/ports/services"
	"github.com/paperledger/paper_ledger_app/internal/middleware"
	"github.com/paperledger/paper_ledger_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Every route is tenant scoped; the guard pins the path company to the
	// token's claim before any handler runs.
	companies := v1.Group("/companies/:companyID", companyGuard())

	RegisterAccountRoutes(companies, services.AccountSvc, services.JournalSvc)
	RegisterJournalRoutes(companies, services.JournalSvc)
	RegisterBalanceRoutes(companies, services.BalanceSvc)
	RegisterReportingRoutes(companies, services.ReportingSvc)
}

// companyGuard rejects requests whose path company does not match the
// authenticated token's company claim.
func companyGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		pathCompanyID := c.Param("companyID")
		tokenCompanyID, ok := middleware.GetCompanyIDFromContext(c)
		if !ok || pathCompanyID == "" || pathCompanyID != tokenCompanyID {
			middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Company scope mismatch")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
