package routes

import (
	"complaint-portal/controllers"
	"complaint-portal/middleware"
	"complaint-portal/views"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the portal pages on r. Session middleware must
// already be installed.
func SetupRoutes(r *gin.Engine) {
	r.SetHTMLTemplate(views.Templates())
	r.StaticFS("/static", views.Static())

	r.GET("/healthz", controllers.Health)

	// Login, registration and the dashboard of the stored session
	r.GET("/", controllers.Home)
	r.POST("/login", controllers.Login)
	r.POST("/register", controllers.Register)
	r.POST("/logout", controllers.Logout)

	complaints := r.Group("/complaints", middleware.RequireSession())
	{
		complaints.POST("", controllers.SubmitComplaint)
		complaints.POST("/anonymous", controllers.CheckAnonymous)
		complaints.POST("/:id/status", controllers.UpdateStatus)
	}
}
