package main

import (
	"github.com/gin-gonic/gin"
	"github.com/mpetrov/taskdesk/internal/handlers"
	"github.com/mpetrov/taskdesk/internal/middleware"
	"github.com/mpetrov/taskdesk/internal/models"
	"github.com/mpetrov/taskdesk/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, authHandler *handlers.AuthHandler) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", authHandler.GetCurrentUser)

			// Projects
			projectHandler := handlers.NewProjectHandler(models.GetDB())
			protected.GET("/projects", projectHandler.List)
			protected.GET("/projects/states", projectHandler.ListStates)
			protected.GET("/projects/:projectId", projectHandler.Get)
			protected.POST("/projects", projectHandler.Create)
			protected.PATCH("/projects/:projectId/state", projectHandler.UpdateState)

			// Project membership
			projectUserHandler := handlers.NewProjectUserHandler(models.GetDB())
			protected.GET("/projects/:projectId/users", projectUserHandler.List)
			protected.GET("/projects/:projectId/users/:userId", projectUserHandler.GetOne)
			protected.POST("/projects/:projectId/users", projectUserHandler.Add)
			protected.DELETE("/projects/:projectId/users/:userId", projectUserHandler.Remove)

			// Tasks
			taskHandler := handlers.NewTaskHandler(models.GetDB())
			protected.GET("/projects/:projectId/tasks", taskHandler.List)
			protected.GET("/projects/:projectId/tasks/:taskId", taskHandler.GetOne)
			protected.POST("/projects/:projectId/tasks", taskHandler.Create)
			protected.DELETE("/projects/:projectId/tasks/:taskId", taskHandler.Delete)
			protected.PATCH("/projects/:projectId/tasks/:taskId/state", taskHandler.UpdateState)

			// Users (manager and above)
			userHandler := handlers.NewUserHandler(models.GetDB())
			protected.GET("/users", middleware.RoleRequired(models.RoleManager), userHandler.List)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLog())
		{
			userHandler := handlers.NewUserHandler(models.GetDB())
			admin.PATCH("/users/:userId/role", userHandler.UpdateRole)

			systemLogHandler := handlers.NewSystemLogHandler(models.GetDB())
			admin.GET("/system-logs", systemLogHandler.List)
		}
	}
}
