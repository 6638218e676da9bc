package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AnasSayed27/GoalsApp/internal/service"
)

func GetStreaks(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, hours, err := app.Streaks().Stats(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to compute streaks")
			return
		}
		HandleSuccess(c, app.Logger(), stats, map[string]any{"heatmapData": hours})
	}
}

func PutHours(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.HoursRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: date and hours required")
			return
		}
		stats, err := app.Streaks().UpdateHours(c.Request.Context(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to update hours")
			return
		}
		HandleSuccess(c, app.Logger(), stats, nil)
	}
}

func ClearStreaks(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Streaks().Clear(c.Request.Context()); err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to clear streak data")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"cleared": true})
	}
}
