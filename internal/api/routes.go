package api

import (
	"net/http"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts the full API surface under /api. Identity resolution
// runs on the whole group; anonymous requests pass through and are rejected
// per-route where authentication is required.
func SetupRoutes(
	router *gin.Engine,
	userRepo repository.UserRepository,
	authService service.AuthService,
	accountService service.AccountService,
	planService service.PlanService,
	mediaService service.MediaService,
	scheduleService service.ScheduleService,
	chatService service.ChatService,
	notificationService service.NotificationService,
	ratingService service.RatingService,
) {
	authHandler := NewAuthHandler(authService)
	accountHandler := NewAccountHandler(accountService)
	planHandler := NewPlanHandler(planService)
	mediaHandler := NewMediaHandler(mediaService)
	scheduleHandler := NewScheduleHandler(scheduleService)
	chatHandler := NewChatHandler(chatService)
	notificationHandler := NewNotificationHandler(notificationService)
	ratingHandler := NewRatingHandler(ratingService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")
	api.Use(IdentityMiddleware(userRepo))
	{
		// Authentication. Open to anonymous callers.
		api.POST("/login", authHandler.Login)
		api.POST("/signup", authHandler.Signup)
		api.GET("/get-current-user", authHandler.CurrentUser)

		// Plans are readable by anyone, including the signup page.
		api.GET("/get-plans", planHandler.List)

		authed := api.Group("")
		authed.Use(RequireAuth())
		{
			// Accounts. Field-level rules live in the account service.
			authed.GET("/get-users", RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer), accountHandler.List)
			authed.PUT("/admin-manage-user", accountHandler.Update)

			// Plan management is admin territory.
			adminPlans := authed.Group("/admin-manage-plan")
			adminPlans.Use(RoleMiddleware(domain.RoleAdmin))
			{
				adminPlans.POST("", planHandler.Create)
				adminPlans.PUT("", planHandler.Update)
				adminPlans.DELETE("", planHandler.Delete)
			}

			// Training videos.
			authed.GET("/training-videos", mediaHandler.ListVideos)
			authed.POST("/training-videos", RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer), mediaHandler.AddVideo)
			authed.DELETE("/training-videos", RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer), mediaHandler.DeleteVideo)

			// Nutrition files.
			authed.GET("/nutrition-files", mediaHandler.ListFiles)
			authed.POST("/nutrition-files", RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer), mediaHandler.AddFile)
			authed.DELETE("/nutrition-files", RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer), mediaHandler.DeleteFile)
			authed.POST("/nutrition-files/upload-url", RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer), mediaHandler.FileUploadURL)

			// Trainee schedules. Reads are open to any principal (the service
			// limits trainees to their own schedule); writes are coach work.
			authed.GET("/trainee-schedules", scheduleHandler.ForTrainee)
			authed.POST("/trainee-schedules", RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer), scheduleHandler.Save)
			authed.PUT("/trainee-schedules", RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer), scheduleHandler.Update)
			authed.DELETE("/trainee-schedules", RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer), scheduleHandler.Delete)

			// Chat.
			authed.GET("/messages", chatHandler.Conversation)
			authed.POST("/messages", chatHandler.Send)

			// Notifications.
			authed.GET("/notifications-crud", notificationHandler.List)
			authed.POST("/notifications-crud", RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer), notificationHandler.Send)
			authed.PUT("/notifications-crud", notificationHandler.MarkRead)

			// Ratings.
			authed.GET("/ratings", RoleMiddleware(domain.RoleAdmin), ratingHandler.List)
			authed.POST("/ratings", RoleMiddleware(domain.RoleTrainee), ratingHandler.Submit)
		}
	}
}
