package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"team-task-service/internal/auth"
	"team-task-service/internal/config"
	"team-task-service/internal/handler"
	"team-task-service/internal/repository"
	"team-task-service/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// In-memory хранилище. Данные живут до перезапуска процесса.
	store := repository.NewStore()

	// Репозитории
	userRepo := repository.NewUserRepository(store)
	teamRepo := repository.NewTeamRepository(store)
	taskRepo := repository.NewTaskRepository(store)

	// Внешние коллабораторы core
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	// Use Cases. Мутирующие операции всех трех сервисов сериализуются
	// одним операционным замком хранилища.
	ops := store.OperationLock()
	authUC := usecase.NewAuthUseCase(userRepo, hasher, tokens, ops)
	teamUC := usecase.NewTeamUseCase(teamRepo, userRepo, ops)
	taskUC := usecase.NewTaskUseCase(taskRepo, teamRepo, userRepo, ops)

	// Echo + Handlers
	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))
	e.Use(handler.AuthMiddleware(tokens))

	authHandler := handler.NewAuthHandler(authUC, cfg.RefreshTTL, logger)
	teamHandler := handler.NewTeamHandler(teamUC, logger)
	taskHandler := handler.NewTaskHandler(taskUC, logger)
	handler.RegisterRoutes(e, authHandler, teamHandler, taskHandler)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
