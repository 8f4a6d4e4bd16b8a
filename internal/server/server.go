package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boardapi/internal/config"
	"boardapi/internal/database"
	"boardapi/internal/logger"
	"boardapi/internal/policy"
	"boardapi/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	p, err := policy.Load(cfg.PolicyFile)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("connected to database", "driver", cfg.DBDriver)

	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	r, err := NewRouter(Deps{
		Users:     repository.NewUserRepository(db),
		Boards:    repository.NewBoardRepository(db),
		Items:     repository.NewItemRepository(db),
		Policy:    p,
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		sqlDB.Close()
	}
	slog.Info("server exited properly")
	return nil
}
