package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"stagelink/config"
	bookingRepo "stagelink/database/repository/booking"
	"stagelink/models"
	"stagelink/services/booking"
	"stagelink/services/notification"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// InitBookingWorker runs the async worker in background. It consumes the
// delayed performer prompts and the event-eve reminders.
func InitBookingWorker(repo bookingRepo.BookingRepository, notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
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
	mux.HandleFunc(booking.TypePerformerPrompt, handlePerformerPrompt(repo, notifSvc))
	mux.HandleFunc(booking.TypeEventReminder, handleEventReminder(repo, notifSvc))

	go func() {
		log.Println("[BookingWorker] starting async worker...")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[BookingWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				time.Sleep(time.Duration(attempts) * 2 * time.Second)
				continue
			}
			return
		}
		log.Println("[BookingWorker] giving up after repeated failures")
	}()
}

// handlePerformerPrompt nudges the performer about a fresh request. The prompt
// is skipped when the booking already moved on (or was reassigned) before the
// delay elapsed.
func handlePerformerPrompt(repo bookingRepo.BookingRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload booking.PromptPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid prompt payload: %w", err)
		}

		b, err := repo.GetByID(ctx, payload.BookingID)
		if err != nil {
			return fmt.Errorf("failed to load booking %s: %w", payload.BookingID, err)
		}
		if b.Status != models.StatusPendingPerformerAcceptance {
			return nil
		}

		comms := notification.Dispatch(notification.EventPerformerPrompt, *b, "System")
		return notifSvc.Notify(ctx, b, comms)
	}
}

// handleEventReminder reminds both parties the day before a confirmed event.
func handleEventReminder(repo bookingRepo.BookingRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload booking.PromptPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid reminder payload: %w", err)
		}

		b, err := repo.GetByID(ctx, payload.BookingID)
		if err != nil {
			return fmt.Errorf("failed to load booking %s: %w", payload.BookingID, err)
		}
		if b.Status != models.StatusConfirmed {
			return nil
		}

		now := time.Now()
		comms := []models.Communication{
			{
				ID:        uuid.New().String(),
				Sender:    "System",
				Recipient: models.RecipientUser,
				Message:   fmt.Sprintf("Reminder: your booking for %s is tomorrow at %s.", b.EventType, b.Time),
				BookingID: b.ID,
				Type:      models.CommStatusUpdate,
				CreatedAt: now,
			},
			{
				ID:        uuid.New().String(),
				Sender:    "System",
				Recipient: b.PerformerID,
				Message:   fmt.Sprintf("Reminder: you perform tomorrow at %s, %s.", b.Time, b.Address),
				BookingID: b.ID,
				Type:      models.CommStatusUpdate,
				CreatedAt: now,
			},
		}
		return notifSvc.Notify(ctx, b, comms)
	}
}
