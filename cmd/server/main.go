package main

import (
	"log"

	_ "boardapi/docs"
	"boardapi/internal/config"
	"boardapi/internal/logger"
	"boardapi/internal/server"
)

// @title           Boards API
// @version         1.0
// @description     Boards and items with pagination, filtering and ownership-based access.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()
	logger.Initialize(cfg.LogLevel, cfg.LogJSON)

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("server initialization failed: %v", err)
	}

	if err := s.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
