package main

import (
	"log"

	"go.uber.org/zap"

	"qrdine/internal/config"
	"qrdine/internal/sandbox"
	"qrdine/pkg/logger"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zlog.Sync()

	srv := sandbox.NewServer(cfg.SandboxJWTSecret, zlog)

	email, password, err := srv.Seed()
	if err != nil {
		zlog.Fatal("failed to seed sandbox", zap.Error(err))
	}
	zlog.Info("sandbox seeded", zap.String("email", email), zap.String("password", password))

	zlog.Info("sandbox listening", zap.String("port", cfg.SandboxPort))
	if err := srv.Router().Run(":" + cfg.SandboxPort); err != nil {
		zlog.Fatal("sandbox server stopped", zap.Error(err))
	}
}
