package routes

import (
	"github.com/gin-gonic/gin"

	"cort_fleet/internal/controllers"
	"cort_fleet/internal/middleware"
)

// AuthRoutes registers the auth endpoints. Signup and login are public;
// profile sits behind the gate.
func AuthRoutes(r *gin.Engine, gate *middleware.AuthGate, ac *controllers.AuthController) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", ac.Signup)
		auth.POST("/login", ac.Login)
		auth.GET("/profile", gate.Handler(), ac.Profile)
	}
}
