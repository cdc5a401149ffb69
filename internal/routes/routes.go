package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cort_fleet/internal/controllers"
	"cort_fleet/internal/identity"
	"cort_fleet/internal/middleware"
)

// SetupRouter builds the engine and registers every resource group. The
// database handle and identity client are constructed in main and injected
// here; nothing below holds package-level state.
func SetupRouter(db *gorm.DB, idSvc identity.Service) *gin.Engine {
	r := gin.New()
	r.Use(ginlogger.SetLogger())
	r.Use(gin.Recovery())

	gate := middleware.NewAuthGate(db, idSvc)

	AuthRoutes(r, gate, &controllers.AuthController{DB: db, Identity: idSvc})
	CompanyRoutes(r, gate, &controllers.CompanyController{DB: db})
	VehicleRoutes(r, gate, &controllers.VehicleController{DB: db})

	return r
}
