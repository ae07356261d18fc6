package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LouisFontaine/ai-cycling-trainer/internal/service"
)

// SetupRoutes wires handlers onto the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	accountService service.AccountService,
	workoutService service.WorkoutService,
) {
	authHandler := NewAuthHandler(authService)
	accountHandler := NewAccountHandler(accountService)
	workoutHandler := NewWorkoutHandler(workoutService)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/auth/me", authHandler.Me)

		userGroup := protected.Group("/users/me")
		{
			userGroup.PUT("/intervals-icu", accountHandler.Connect)
			userGroup.DELETE("/intervals-icu", accountHandler.Disconnect)
			userGroup.GET("/intervals-icu/status", accountHandler.Status)
		}

		protected.GET("/workouts/next", workoutHandler.Next)
	}
}
