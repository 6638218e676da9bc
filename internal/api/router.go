package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every tracker surface behind the shared middleware.
func NewRouter(app App, apiToken string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	g := r.Group("/api", AuthMiddleware(apiToken))

	g.GET("/goals", ListGoals(app))
	g.POST("/goals", PostGoal(app))
	g.GET("/goals/:id", GetGoal(app))
	g.DELETE("/goals/:id", DeleteGoal(app))
	g.POST("/goals/:id/subgoals", PostSubGoal(app))
	g.DELETE("/goals/:id/subgoals/:subID", DeleteSubGoal(app))
	g.POST("/goals/:id/weeks/:index/tasks", PostWeekTask(app))
	g.PATCH("/goals/:id/weeks/:index/tasks/:taskID", ToggleWeekTask(app))
	g.DELETE("/goals/:id/weeks/:index/tasks/:taskID", DeleteWeekTask(app))

	g.GET("/streaks", GetStreaks(app))
	g.PUT("/streaks/hours", PutHours(app))
	g.DELETE("/streaks", ClearStreaks(app))

	g.GET("/tasks", ListTasks(app))
	g.POST("/tasks", PostTask(app))
	g.PATCH("/tasks/:id", PatchTask(app))
	g.DELETE("/tasks/:id", DeleteTask(app))
	g.POST("/tasks/:id/move", MoveTask(app))
	g.PUT("/tasks/order", ReorderTasks(app))

	g.GET("/backup/export", ExportBackup(app))
	g.POST("/backup/import", ImportBackup(app))

	return r
}
