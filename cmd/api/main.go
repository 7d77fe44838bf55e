package main

import (
	"log"
	"time"

	"github.com/Ritwik411/DevConnector/internal/database"
	"github.com/Ritwik411/DevConnector/internal/handlers"
	"github.com/Ritwik411/DevConnector/internal/middleware"
	"github.com/Ritwik411/DevConnector/internal/monitoring"
	"github.com/Ritwik411/DevConnector/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	if err := utils.EnsureJWTReady(); err != nil {
		log.Fatal("JWT configuration error: ", err)
	}

	database.InitDB()
	defer database.CloseDB()
	database.CreateTables()

	handlers.SetMonitoringService(monitoring.NewService(time.Now()))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(monitoring.RequestMetricsMiddleware())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/api/status", handlers.Status)

	monitoringGroup := router.Group("/api/monitoring")
	{
		monitoringGroup.GET("/status", handlers.MonitorStatus)
		monitoringGroup.GET("/snapshot", handlers.MonitorSnapshot)
		monitoringGroup.GET("/users", handlers.MonitorUsersList)
	}

	router.POST("/api/users", handlers.Register)
	router.POST("/api/auth", handlers.Login)
	router.GET("/api/auth", middleware.AuthMiddleware(), handlers.GetCurrentUser)

	profile := router.Group("/api/profile")
	{
		profile.GET("", handlers.GetAllProfiles)
		profile.GET("/user/:user_id", handlers.GetProfileByUser)

		profile.POST("", middleware.AuthMiddleware(), handlers.UpsertProfile)
		profile.GET("/me", middleware.AuthMiddleware(), handlers.GetMyProfile)
		profile.DELETE("", middleware.AuthMiddleware(), handlers.DeleteAccount)
		profile.PUT("/experience", middleware.AuthMiddleware(), handlers.AddExperience)
		profile.DELETE("/experience/:exp_id", middleware.AuthMiddleware(), handlers.DeleteExperience)
		profile.PUT("/education", middleware.AuthMiddleware(), handlers.AddEducation)
		profile.DELETE("/education/:edu_id", middleware.AuthMiddleware(), handlers.DeleteEducation)
	}

	posts := router.Group("/api/posts", middleware.AuthMiddleware())
	{
		posts.POST("", handlers.CreatePost)
		posts.GET("", handlers.GetPosts)
		posts.GET("/:id", handlers.GetPost)
		posts.DELETE("/:id", handlers.DeletePost)
		posts.PUT("/like/:id", handlers.LikePost)
		posts.PUT("/unlike/:id", handlers.UnlikePost)
		posts.POST("/comment/:id", handlers.AddComment)
		posts.DELETE("/comment/:id/:comment_id", handlers.DeleteComment)
	}

	log.Println("DevConnector API starting on :8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
