package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"taskpad/internal/cli"
	"taskpad/internal/config"
	"taskpad/internal/logger"
	"taskpad/internal/repository"
	"taskpad/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New()

	cfgPath := os.Getenv("TASKPAD_CONFIG")
	if cfgPath == "" {
		cfgPath = "taskpad.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	db, err := repository.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatal("db", zap.Error(err))
	}

	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	taskSvc := service.NewTaskService(taskRepo)
	projectSvc := service.NewProjectService(projectRepo)
	snapshotSvc := service.NewSnapshotService(taskSvc, projectSvc)
	reportSvc := service.NewReportService(taskRepo, projectRepo)

	app := &cli.App{
		Tasks:     taskSvc,
		Projects:  projectSvc,
		Snapshots: snapshotSvc,
		Reports:   reportSvc,
		Scheduler: service.NewSchedulerService(time.Local),
		Config:    cfg,
		Log:       log,
		Out:       os.Stdout,
	}

	code := app.Run(ctx, os.Args[1:])

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	_ = log.Sync()
	os.Exit(code)
}
