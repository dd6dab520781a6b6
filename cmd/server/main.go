package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taglayer/internal/config"
	"taglayer/internal/logging"
	"taglayer/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logging.Init()
	cfg := config.New()

	srv, err := server.New(cfg)
	if err != nil {
		logging.Logger.Fatalf("failed to create server: %v", err)
	}

	go func() {
		if err := srv.Run(); err != nil {
			logging.Logger.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Errorf("shutdown error: %v", err)
	}
}
