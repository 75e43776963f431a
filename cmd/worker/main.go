package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/eduhire/eduhire-api/adapters/event"
	"github.com/eduhire/eduhire-api/adapters/persistence"
	workerUC "github.com/eduhire/eduhire-api/internal/application/usecase/profile"
	"github.com/eduhire/eduhire-api/internal/config"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

func main() {
	fmt.Println("Starting EduHire Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	userCache := persistence.NewRedisUserCache(redisClient, appLogger)

	// Worker Use Case
	processViewEventUC := workerUC.NewProcessViewEventUseCase(userRepo, userCache, appLogger)

	// Kafka Consumer
	viewConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicViewEvents,
		GroupID:  "view-counter-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer viewConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicViewEvents)

	ctx := context.Background()
	for {
		msg, err := viewConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		log.Printf("Received message from [Topic: %s], [Key: %s]", msg.Topic, string(msg.Key))

		var payload event.ViewEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(viewConsumer, msg)
			continue
		}

		log.Printf("Processing view event for UserID: %s", payload.UserID)

		err = processViewEventUC.Execute(ctx, payload)
		if err != nil {
			log.Printf("ERROR: Failed to process view event for UserID %s: %v", payload.UserID, err)
			continue
		}

		commitMessage(viewConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
