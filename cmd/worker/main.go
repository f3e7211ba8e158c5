package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hagwon/internal/config"
	"hagwon/internal/metrics"
	"hagwon/internal/notify"
	"hagwon/internal/queue"
	"hagwon/internal/store"
)

// Worker consumes queued check-in notifications and hands them to the
// configured notifier.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "hagwon:notifications")
	}

	var notifier notify.Notifier = notify.Console{}
	if cfg.NotifyBackend != "console" {
		log.Printf("unknown notify backend %q, using console", cfg.NotifyBackend)
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for messages...")
	for msg := range messages {
		if msg.Type != "checkin" {
			continue
		}

		job, err := notify.DecodeJob(msg.Body)
		if err != nil {
			log.Printf("bad notification payload: %v", err)
			continue
		}

		if err := notifier.Send(ctx, job); err != nil {
			log.Printf("notify %s failed: %v", job.ParentPhone, err)
			continue
		}
		metrics.NotificationsSent.Inc()
	}

	log.Println("worker stopped")
}
