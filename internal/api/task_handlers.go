package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AnasSayed27/GoalsApp/internal/service"
)

func ListTasks(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, stats, err := app.Tasks().List(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to fetch tasks")
			return
		}
		HandleSuccess(c, app.Logger(), tasks, map[string]any{"stats": stats})
	}
}

func PostTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.TaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: name and duration required")
			return
		}
		task, err := app.Tasks().Add(c.Request.Context(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to add task")
			return
		}
		HandleSuccess(c, app.Logger(), task, nil)
	}
}

// PatchTask edits name/duration when a body is present, otherwise toggles
// completion.
func PatchTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.TaskRequest
		if err := c.ShouldBindJSON(&req); err == nil && req.Name != "" {
			if err := app.Tasks().Edit(c.Request.Context(), c.Param("id"), &req); err != nil {
				HandleError(c, app.Logger(), err, statusFor(err), "Failed to edit task")
				return
			}
			HandleSuccess(c, app.Logger(), nil, map[string]any{"edited": c.Param("id")})
			return
		}
		completed, err := app.Tasks().Toggle(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to toggle task")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"completed": completed})
	}
}

func DeleteTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Tasks().Delete(c.Request.Context(), c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to delete task")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": c.Param("id")})
	}
}

type moveRequest struct {
	Direction string `json:"direction"`
}

func MoveTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req moveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: direction required")
			return
		}
		if err := app.Tasks().Move(c.Request.Context(), c.Param("id"), req.Direction); err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to move task")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"moved": c.Param("id")})
	}
}

type orderRequest struct {
	IDs []string `json:"ids"`
}

func ReorderTasks(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: ids required")
			return
		}
		if err := app.Tasks().Reorder(c.Request.Context(), req.IDs); err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to reorder tasks")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"reordered": len(req.IDs)})
	}
}
