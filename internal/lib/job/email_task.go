package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names stored in Redis; asynq routes on them.
const (
	TaskWelcome       = "email:welcome"
	TaskAccountStatus = "email:account_status"
)

// WelcomeEmailPayload is the JSON payload of a TaskWelcome task.
type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// AccountStatusEmailPayload is the JSON payload of a TaskAccountStatus task.
type AccountStatusEmailPayload struct {
	To     string `json:"to"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// NewWelcomeEmailTask constructs an Asynq task for sending a welcome email.
//
// Options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("default")
//   - Timeout(30s): kill the task if the handler runs longer
func NewWelcomeEmailTask(to, name, role string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{To: to, Name: name, Role: role})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

func NewAccountStatusEmailTask(to, name, status string) (*asynq.Task, error) {
	payload, err := json.Marshal(AccountStatusEmailPayload{To: to, Name: name, Status: status})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskAccountStatus,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueWelcome schedules a welcome email for a newly created account.
func (j *JobService) EnqueueWelcome(ctx context.Context, to, name, role string) error {
	task, err := NewWelcomeEmailTask(to, name, role)
	if err != nil {
		return err
	}
	_, err = j.Client.EnqueueContext(ctx, task)
	return err
}

// EnqueueStatusChange schedules a notice that an account changed status.
func (j *JobService) EnqueueStatusChange(ctx context.Context, to, name, status string) error {
	task, err := NewAccountStatusEmailTask(to, name, status)
	if err != nil {
		return err
	}
	_, err = j.Client.EnqueueContext(ctx, task)
	return err
}
