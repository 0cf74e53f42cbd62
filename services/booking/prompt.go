package booking

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TypePerformerPrompt is the asynq task that delivers the performer-facing
// prompt shortly after a request is created. The delay is a UX affordance;
// the worker may also run it immediately.
const TypePerformerPrompt = "booking:performer_prompt"

// TypeEventReminder nudges client and performer on the eve of a confirmed event.
const TypeEventReminder = "booking:reminder"

// PromptPayload is the task body for both task types.
type PromptPayload struct {
	BookingID string `json:"booking_id"`
}

// PromptScheduler enqueues delayed booking tasks. Wrapping the asynq client in
// an interface keeps the state machine testable without a running redis.
type PromptScheduler interface {
	SchedulePerformerPrompt(bookingID string, delay time.Duration) error
	ScheduleEventReminder(bookingID string, at time.Time) error
}

// AsynqPromptScheduler is the production implementation.
type AsynqPromptScheduler struct {
	Client *asynq.Client
}

func (s *AsynqPromptScheduler) SchedulePerformerPrompt(bookingID string, delay time.Duration) error {
	payload, err := json.Marshal(PromptPayload{BookingID: bookingID})
	if err != nil {
		return fmt.Errorf("failed to marshal prompt payload: %w", err)
	}
	task := asynq.NewTask(TypePerformerPrompt, payload)
	if _, err := s.Client.Enqueue(task, asynq.ProcessIn(delay)); err != nil {
		return fmt.Errorf("failed to enqueue performer prompt: %w", err)
	}
	return nil
}

func (s *AsynqPromptScheduler) ScheduleEventReminder(bookingID string, at time.Time) error {
	payload, err := json.Marshal(PromptPayload{BookingID: bookingID})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	task := asynq.NewTask(TypeEventReminder, payload)
	if _, err := s.Client.Enqueue(task, asynq.ProcessAt(at)); err != nil {
		return fmt.Errorf("failed to enqueue event reminder: %w", err)
	}
	return nil
}
