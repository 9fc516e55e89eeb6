package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/EgorTarasov/ldt-2023/internal/app/controllers"
	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	vacancyController *controllers.VacancyController,
	applicationController *controllers.ApplicationController,
	feedbackController *controllers.FeedbackController,
	mailingController *controllers.MailingController,
	activityController *controllers.ActivityController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		users := authenticated.Group("/users")
		{
			users.PUT("/me", userController.UpdateProfile)
			users.PUT("/me/password", userController.ChangePassword)
			users.GET("/mentors", userController.ListMentors)
			users.GET("/:id", userController.GetProfile)
		}

		vacancies := authenticated.Group("/vacancies")
		{
			// Listing and reads are visibility-filtered per role inside the service.
			vacancies.GET("", vacancyController.List)
			vacancies.GET("/filters", vacancyController.Filters)
			vacancies.GET("/:id", vacancyController.Get)

			vacanciesHR := vacancies.Group("")
			vacanciesHR.Use(authMiddleware.RoleRequired(models.RoleHR))
			{
				vacanciesHR.POST("", vacancyController.Create)
				vacanciesHR.POST("/:id/propose", vacancyController.ProposeMentor)
				vacanciesHR.DELETE("/:id", vacancyController.Delete)
			}

			vacanciesMentor := vacancies.Group("")
			vacanciesMentor.Use(authMiddleware.RoleRequired(models.RoleMentor))
			{
				vacanciesMentor.GET("/offers/my", vacancyController.MyOffers)
				vacanciesMentor.POST("/:id/accept", vacancyController.AcceptOffer)
				vacanciesMentor.POST("/:id/decline", vacancyController.DeclineOffer)
				vacanciesMentor.POST("/:id/publish", vacancyController.Publish)
			}
		}

		applications := authenticated.Group("/applications")
		{
			applications.POST("", applicationController.Submit)
			applications.GET("/:id", applicationController.Get)

			applicationsCurator := applications.Group("")
			applicationsCurator.Use(authMiddleware.RoleRequired(models.RoleCurator))
			{
				applicationsCurator.GET("", applicationController.List)
				applicationsCurator.GET("/stats", applicationController.Stats)
				applicationsCurator.POST("/:id/approve", applicationController.Approve)
				applicationsCurator.POST("/:id/decline", applicationController.Decline)
			}
		}

		feedback := authenticated.Group("/feedback")
		{
			feedback.POST("", feedbackController.Create)
			feedback.GET("/my", feedbackController.Mine)
			feedback.GET("/about/:id", feedbackController.About)
			feedback.DELETE("/:id", feedbackController.Delete)
		}

		mailings := authenticated.Group("/mailings")
		{
			mailings.GET("/my", mailingController.History)

			mailingsCurator := mailings.Group("")
			mailingsCurator.Use(authMiddleware.RoleRequired(models.RoleCurator))
			{
				mailingsCurator.POST("/school-invite", mailingController.SchoolInvite)
				mailingsCurator.POST("/event-info", mailingController.EventInfo)
				mailingsCurator.POST("/event-reminder", mailingController.EventReminder)
			}

			mailingsStaff := mailings.Group("")
			mailingsStaff.Use(authMiddleware.RoleRequired(models.RoleCurator, models.RoleHR))
			{
				mailingsStaff.POST("/credentials", mailingController.IssueCredentials)
			}
		}

		activity := authenticated.Group("/activity")
		{
			activity.GET("/events", activityController.Events)
			activity.GET("/:id", activityController.Breakdown)

			activityStaff := activity.Group("")
			activityStaff.Use(authMiddleware.RoleRequired(models.RoleCurator, models.RoleHR))
			{
				activityStaff.GET("/leaderboard", activityController.Leaderboard)
			}
		}
	}

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
