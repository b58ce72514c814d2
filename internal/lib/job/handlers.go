package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleWelcomeEmailTask decodes the payload and sends the email. Returning
// an error makes asynq mark the task failed and schedule a retry.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := j.email.SendWelcomeEmail(p.To, p.Name, p.Role); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}

func (j *JobService) handleAccountStatusEmailTask(ctx context.Context, t *asynq.Task) error {
	var p AccountStatusEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal account status email payload: %w", err)
	}

	log := j.logger.With().Str("type", "account_status").Str("to", p.To).Logger()

	if err := j.email.SendAccountStatusEmail(p.To, p.Name, p.Status); err != nil {
		log.Error().Err(err).Msg("Failed to send account status email")
		return err
	}

	log.Info().Str("status", p.Status).Msg("Successfully sent account status email")
	return nil
}
