package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"HealthAssistant/internal/config"
	"HealthAssistant/pkg/log"
	"HealthAssistant/pkg/redis"
	"HealthAssistant/pkg/responder"
)

func main() {
	logger, envErr := log.Init()
	if envErr != nil {
		logger.Warnf("No .env file loaded: %v", envErr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initGenerator, err := config.NewGenerativeInitializer()
	if err != nil {
		logger.Fatal(err)
	}
	// the server answers immediately; replies say "warming up" until this finishes
	generative := responder.New(logger, config.GenerativeTimeout(), initGenerator)
	generative.Start(ctx)

	options := []config.ServerOption{
		config.WithFiber(config.NewFiber(logger)),
		config.WithLogger(logger),
		config.WithValidator(config.NewValidator()),
		config.WithDatabase(),
		config.WithUtils(),
		config.WithMiddleware(),
		config.WithIntentClassifier(),
		config.WithResponder(generative),
	}
	if strings.EqualFold(os.Getenv("HISTORY_BACKEND"), "redis") {
		options = append(options, config.WithRedisServer(redis.New()))
	}
	options = append(options, config.WithHistoryStore())

	server, err := config.NewServer(options...)
	if err != nil {
		logger.Fatal(err)
	}

	if err := server.RegisterHandler(ctx); err != nil {
		logger.Fatal(err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(10 * time.Second); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
