package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// ExportBackup streams the full backup envelope as a download.
func ExportBackup(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ts := time.Now().UTC().Format("2006-01-02T15-04-05Z")
		c.Header("Content-Type", "application/json")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="GoalsApp_Backup_%s.json"`, ts))
		if err := app.Backup().Export(c.Request.Context(), c.Writer); err != nil {
			app.Logger().Errorf("backup export failed: %v", err)
			c.Status(500)
		}
	}
}

// ImportBackup restores from an uploaded envelope, overwriting current data.
func ImportBackup(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Backup().Import(c.Request.Context(), c.Request.Body); err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to restore backup")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"restored": true})
	}
}
