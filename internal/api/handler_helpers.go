package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/AnasSayed27/GoalsApp/internal"
	"github.com/AnasSayed27/GoalsApp/internal/backup"
	"github.com/AnasSayed27/GoalsApp/internal/planner"
	"github.com/AnasSayed27/GoalsApp/internal/response"
	"github.com/AnasSayed27/GoalsApp/internal/service"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(200, response.Success(data, meta))
}

// statusFor maps service errors onto the taxonomy: validation failures are
// 400, missing resources 404, everything else a storage-level 500.
func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrGoalNotFound),
		errors.Is(err, service.ErrSubGoalNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrDailyTaskNotFound):
		return 404
	case errors.As(err, &verrs),
		errors.Is(err, planner.ErrRangeInverted),
		errors.Is(err, planner.ErrOutsideParent),
		errors.Is(err, planner.ErrOverlap),
		errors.Is(err, service.ErrWeekOutOfRange),
		errors.Is(err, service.ErrEmptyTaskText),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrBadDirection),
		errors.Is(err, service.ErrBadOrder),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, backup.ErrInvalidPayload),
		errors.Is(err, backup.ErrForeignBackup):
		return 400
	default:
		return 500
	}
}
