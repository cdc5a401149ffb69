package routes

import (
	"github.com/gin-gonic/gin"

	"cort_fleet/internal/controllers"
	"cort_fleet/internal/middleware"
	"cort_fleet/internal/models"
)

// VehicleRoutes registers the vehicle endpoints. Row-level ownership for
// vehicles is finer-grained than the company rule, so it lives in the
// controller rather than a middleware.
func VehicleRoutes(r *gin.Engine, gate *middleware.AuthGate, vc *controllers.VehicleController) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(gate.Handler())
	vehicles.Use(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleCompanyAdmin))
	{
		vehicles.POST("/create", vc.Create)
		vehicles.GET("/list", vc.List)
		vehicles.GET("/:id", vc.Get)
		vehicles.PATCH("/update/:id", vc.Update)
		vehicles.DELETE("/delete/:id", vc.Delete)
	}
}
