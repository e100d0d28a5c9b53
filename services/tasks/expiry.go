package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task types handled by the hold-expiry worker.
const (
	TypeExpireHold = "appointment:expire"
	TypeSweepHolds = "appointment:sweep"
)

// ExpirePayload names the pre-booking hold to expire.
type ExpirePayload struct {
	AppointmentID string `json:"appointment_id"`
}

// NewExpireTask builds the deferred task that expires one hold at fireAt.
func NewExpireTask(appointmentID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ExpirePayload{AppointmentID: appointmentID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeExpireHold, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqExpiryScheduler enqueues hold-expiry tasks on the shared queue.
type AsynqExpiryScheduler struct {
	Client *asynq.Client
}

func (s *AsynqExpiryScheduler) ScheduleExpiry(ctx context.Context, appointmentID string, at time.Time) error {
	task, opts, err := NewExpireTask(appointmentID, at)
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	return err
}
