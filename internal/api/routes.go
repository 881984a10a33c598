package api

import (
	"net/http"

	"estructura/coach-app/internal/domain"
	"estructura/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	clientService service.ClientService,
	trainerService service.TrainerService,
) {
	authHandler := NewAuthHandler(authService)
	clientHandler := NewClientHandler(clientService)
	trainerHandler := NewTrainerHandler(trainerService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		clientGroup := protected.Group("/client")
		clientGroup.Use(RoleMiddleware(domain.RoleClient))
		{
			clientGroup.GET("/dashboard", clientHandler.GetDashboard)
			clientGroup.POST("/meals", clientHandler.LogMeal)
			clientGroup.POST("/exercises", clientHandler.LogExercise)
			clientGroup.POST("/weights", clientHandler.LogWeight)
			clientGroup.POST("/progress-photo-url", clientHandler.RequestPhotoUploadURL)
		}

		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			trainerGroup.GET("/clients", trainerHandler.GetRoster)
			trainerGroup.POST("/clients", trainerHandler.CreateClient)
			trainerGroup.GET("/clients/:clientId", trainerHandler.GetClientDetail)
			trainerGroup.POST("/clients/:clientId/diet-plans", trainerHandler.AddDietPlanEntry)
			trainerGroup.POST("/clients/:clientId/training-plans", trainerHandler.AddTrainingPlanEntry)
			trainerGroup.PATCH("/clients/:clientId/payment-status", trainerHandler.SetPaymentStatus)
			trainerGroup.GET("/clients/:clientId/weights/:weightId/photo-url", trainerHandler.GetWeightPhotoURL)
		}
	}
}
