package routes

import (
	"github.com/gin-gonic/gin"

	"cort_fleet/internal/controllers"
	"cort_fleet/internal/middleware"
	"cort_fleet/internal/models"
)

// CompanyRoutes registers the company endpoints. The allowed roles and the
// ownership rule for each operation are visible right here, at registration.
func CompanyRoutes(r *gin.Engine, gate *middleware.AuthGate, cc *controllers.CompanyController) {
	companies := r.Group("/companies")
	companies.Use(gate.Handler())
	{
		companies.POST("/create",
			middleware.RequireRoles(models.RoleSuperAdmin),
			cc.Create)
		companies.GET("/list",
			middleware.RequireRoles(models.RoleSuperAdmin, models.RoleCompanyAdmin),
			cc.List)
		companies.GET("/:id",
			middleware.RequireRoles(models.RoleSuperAdmin, models.RoleCompanyAdmin, models.RoleEmployee),
			middleware.CompanyAccess(middleware.AccessOwnOnly),
			cc.Get)
		companies.PATCH("/update/:id",
			middleware.RequireRoles(models.RoleSuperAdmin, models.RoleCompanyAdmin),
			middleware.CompanyAccess(middleware.AccessOwnOnly),
			cc.Update)
		companies.DELETE("/delete/:id",
			middleware.RequireRoles(models.RoleSuperAdmin),
			cc.Delete)
	}
}
