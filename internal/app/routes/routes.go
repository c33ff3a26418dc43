package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kisinia/yosa/internal/app/controllers"
	"github.com/kisinia/yosa/internal/app/models"
	"github.com/kisinia/yosa/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/home", ctrl.Event.GetHome)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.RefreshToken)
		auth.POST("/logout", ctrl.Auth.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/dashboard", ctrl.Event.GetDashboard)

		events := authenticated.Group("/events")
		{
			events.GET("", ctrl.Event.ListEvents)
			events.GET("/past", ctrl.Event.GetPastEvents)
			events.GET("/:id", ctrl.Event.GetEvent)
			events.POST("/:id/register", ctrl.Event.RegisterForEvent)
			events.POST("/:id/cancel", ctrl.Event.CancelRegistration)

			// Event management requires the staff role
			eventsStaff := events.Group("")
			eventsStaff.Use(authMiddleware.RoleRequired(models.RoleStaff))
			{
				eventsStaff.POST("", ctrl.Event.CreateEvent)
				eventsStaff.PUT("/:id", ctrl.Event.UpdateEvent)
			}
		}

		profile := authenticated.Group("/profile")
		{
			profile.GET("", ctrl.User.GetProfile)
			profile.PUT("", ctrl.User.UpdateProfile)
			profile.PUT("/avatar", ctrl.User.UpdateAvatar)
		}

		messages := authenticated.Group("/messages")
		{
			messages.GET("", ctrl.Message.ListMessages)
			messages.POST("", ctrl.Message.SendMessage)
			messages.GET("/:id", ctrl.Message.GetMessage)
		}

		authenticated.POST("/feedback", ctrl.Message.SubmitFeedback)

		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleStaff))
		{
			admin.GET("/dashboard", ctrl.Admin.GetDashboard)
		}
	}
}
