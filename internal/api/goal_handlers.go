package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AnasSayed27/GoalsApp/internal/service"
)

func ListGoals(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		goals, err := app.Goals().List(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to fetch goals")
			return
		}
		HandleSuccess(c, app.Logger(), goals, nil)
	}
}

func GetGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		goal, err := app.Goals().Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to fetch goal")
			return
		}
		HandleSuccess(c, app.Logger(), goal, nil)
	}
}

func PostGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.GoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: name and dates required")
			return
		}
		goal, err := app.Goals().Create(c.Request.Context(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to create goal")
			return
		}
		HandleSuccess(c, app.Logger(), goal, nil)
	}
}

func DeleteGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Goals().Delete(c.Request.Context(), c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to delete goal")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": c.Param("id")})
	}
}

func PostSubGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.GoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: name and dates required")
			return
		}
		sub, err := app.Goals().AddSubGoal(c.Request.Context(), c.Param("id"), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to add sub-goal")
			return
		}
		HandleSuccess(c, app.Logger(), sub, nil)
	}
}

func DeleteSubGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := app.Goals().DeleteSubGoal(c.Request.Context(), c.Param("id"), c.Param("subID"))
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to delete sub-goal")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": c.Param("subID")})
	}
}

type weekTaskRequest struct {
	Text string `json:"text"`
}

func weekIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, false
	}
	return idx, true
}

func PostWeekTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, ok := weekIndex(c)
		if !ok {
			HandleError(c, app.Logger(), service.ErrWeekOutOfRange, 400, "Invalid week index")
			return
		}
		var req weekTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: text required")
			return
		}
		task, err := app.Goals().AddWeekTask(c.Request.Context(), c.Param("id"), c.Query("subgoal"), idx, req.Text)
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to add task")
			return
		}
		HandleSuccess(c, app.Logger(), task, nil)
	}
}

func ToggleWeekTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, ok := weekIndex(c)
		if !ok {
			HandleError(c, app.Logger(), service.ErrWeekOutOfRange, 400, "Invalid week index")
			return
		}
		completed, err := app.Goals().ToggleWeekTask(c.Request.Context(), c.Param("id"), c.Query("subgoal"), idx, c.Param("taskID"))
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to toggle task")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"completed": completed})
	}
}

func DeleteWeekTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, ok := weekIndex(c)
		if !ok {
			HandleError(c, app.Logger(), service.ErrWeekOutOfRange, 400, "Invalid week index")
			return
		}
		err := app.Goals().DeleteWeekTask(c.Request.Context(), c.Param("id"), c.Query("subgoal"), idx, c.Param("taskID"))
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to delete task")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": c.Param("taskID")})
	}
}
