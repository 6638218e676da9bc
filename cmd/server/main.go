package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AnasSayed27/GoalsApp/internal"
	"github.com/AnasSayed27/GoalsApp/internal/api"
	"github.com/AnasSayed27/GoalsApp/internal/backup"
	"github.com/AnasSayed27/GoalsApp/internal/config"
	"github.com/AnasSayed27/GoalsApp/internal/service"
	"github.com/AnasSayed27/GoalsApp/internal/storage"
)

type application struct {
	logger  internal.Logger
	goals   *service.GoalService
	streaks *service.StreakService
	tasks   *service.TaskService
	backup  *backup.Service
}

func (a *application) Logger() internal.Logger         { return a.logger }
func (a *application) Goals() *service.GoalService     { return a.goals }
func (a *application) Streaks() *service.StreakService { return a.streaks }
func (a *application) Tasks() *service.TaskService     { return a.tasks }
func (a *application) Backup() *backup.Service         { return a.backup }

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	store, err := storage.NewStore(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	app := &application{
		logger:  logger,
		goals:   service.NewGoalService(store, logger),
		streaks: service.NewStreakService(store, logger, nil),
		tasks:   service.NewTaskService(store, logger),
		backup:  backup.NewService(store, store, store, logger, nil),
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(app, cfg.APIToken)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		logger.Infof("server running on %s (backend=%s)", cfg.ListenAddr, cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := store.Close(); err != nil {
		logger.Errorf("storage close: %v", err)
	}
}
