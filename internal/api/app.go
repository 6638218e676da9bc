package api

import (
	"github.com/AnasSayed27/GoalsApp/internal"
	"github.com/AnasSayed27/GoalsApp/internal/backup"
	"github.com/AnasSayed27/GoalsApp/internal/service"
)

type App interface {
	Logger() internal.Logger
	Goals() *service.GoalService
	Streaks() *service.StreakService
	Tasks() *service.TaskService
	Backup() *backup.Service
}
