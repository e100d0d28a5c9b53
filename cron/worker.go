package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"groomify/config"
	"groomify/services/booking"
	"groomify/services/tasks"

	"github.com/hibiken/asynq"
)

// InitExpiryWorker runs the hold-expiry worker in background: it consumes
// the per-appointment deferred expiry tasks plus the periodic sweep that
// backstops them.
func InitExpiryWorker(bookingSvc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeExpireHold, handleExpireTask(bookingSvc))
	mux.HandleFunc(tasks.TypeSweepHolds, handleSweepTask(bookingSvc))

	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	go runSweepScheduler(redisOpts)
}

func handleExpireTask(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryWorker] invalid payload: %v", err)
			return err
		}
		return bookingSvc.Expire(ctx, p.AppointmentID)
	}
}

func handleSweepTask(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		_, err := bookingSvc.SweepExpired(ctx)
		return err
	}
}

// runSweepScheduler enqueues the sweep task every minute.
func runSweepScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("* * * * *", asynq.NewTask(tasks.TypeSweepHolds, nil)); err != nil {
		log.Printf("[ExpiryWorker] failed to register sweep: %v", err)
		return
	}
	if err := scheduler.Run(); err != nil {
		log.Printf("[ExpiryWorker] sweep scheduler stopped: %v", err)
	}
}
