package notification

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier records emails in the log instead of sending them.
// It is used when no SMTP relay is configured.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("notifier", "log").Logger()}
}

func (n *LogNotifier) Notify(_ context.Context, email Email) error {
	n.logger.Info().
		Str("kind", email.Kind).
		Str("recipient", email.To).
		Str("subject", email.Subject).
		Msg("email notification dispatched (log only)")
	n.logger.Debug().Str("recipient", email.To).Msg(email.Body)
	return nil
}

func (n *LogNotifier) String() string {
	return "LogNotifier"
}
