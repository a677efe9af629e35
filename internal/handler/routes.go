package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes привязывает обработчики к маршрутам API.
func RegisterRoutes(e *echo.Echo, authHandler *AuthHandler, teamHandler *TeamHandler, taskHandler *TaskHandler) {
	api := e.Group("/api")

	api.POST("/auth/register", authHandler.PostRegister)
	api.POST("/auth/login", authHandler.PostLogin)
	api.POST("/auth/refresh", authHandler.PostRefresh)
	api.GET("/auth/me", authHandler.GetMe)

	api.GET("/teams", teamHandler.GetTeams)
	api.POST("/teams", teamHandler.PostTeam)
	api.GET("/teams/:id", teamHandler.GetTeam)
	api.PATCH("/teams/:id", teamHandler.PatchTeam)
	api.DELETE("/teams/:id", teamHandler.DeleteTeam)

	api.GET("/teams/:id/members", teamHandler.GetMembers)
	api.POST("/teams/:id/members", teamHandler.PostMember)
	api.PATCH("/members/:id/role", teamHandler.PatchMemberRole)
	api.DELETE("/members/:id", teamHandler.DeleteMember)

	api.GET("/teams/:id/tasks", taskHandler.GetTeamTasks)
	api.POST("/tasks", taskHandler.PostTask)
	api.GET("/tasks/:id", taskHandler.GetTask)
	api.PATCH("/tasks/:id", taskHandler.PatchTask)
	api.DELETE("/tasks/:id", taskHandler.DeleteTask)

	api.POST("/tasks/:id/assign", taskHandler.PostAssign)
	api.POST("/tasks/:id/unassign", taskHandler.PostUnassign)
	api.PATCH("/tasks/:id/status", taskHandler.PatchStatus)
	api.GET("/tasks/:id/history", taskHandler.GetHistory)
}
