package http

import (
	"github.com/gin-gonic/gin"

	"daytrack/internal/adapter/http/handlers"
	"daytrack/internal/adapter/http/middleware"
)

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler, statsHandler *handlers.StatsHandler) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)

		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks", taskHandler.ListTasks)
		api.DELETE("/tasks", taskHandler.DeleteTasks)
		api.GET("/tasks/:id", taskHandler.GetTask)
		api.PUT("/tasks/:id", taskHandler.ReplaceTask)
		api.PATCH("/tasks/:id", taskHandler.PatchTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)

		api.POST("/tasks/:id/subtasks", taskHandler.AddSubtask)
		api.PATCH("/tasks/:id/subtasks/:subtaskId", taskHandler.PatchSubtask)
		api.DELETE("/tasks/:id/subtasks/:subtaskId", taskHandler.DeleteSubtask)
		api.POST("/tasks/:id/tags", taskHandler.AddTag)
		api.DELETE("/tasks/:id/tags/:tag", taskHandler.DeleteTag)
		api.POST("/tasks/:id/time", taskHandler.LogTime)

		api.GET("/categories", statsHandler.ListCategorySummaries)
		api.GET("/categories/daily/active", statsHandler.ListActiveDailyTasks)
		api.GET("/categories/stats/overview", statsHandler.GetOverview)
		api.GET("/categories/:category/tasks", statsHandler.ListCategoryTasks)
		api.GET("/categories/:category/stats", statsHandler.GetCategoryStats)
	}
}
