package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Email is one plain-text transactional message.
type Email struct {
	Kind    string
	To      string
	Subject string
	Body    string
}

// Notifier delivers transactional emails.
type Notifier interface {
	Notify(ctx context.Context, email Email) error
}

func logNotifyError(logger zerolog.Logger, err error, channel string, email Email) {
	if err == nil {
		return
	}
	logger.Warn().
		Err(err).
		Str("kind", email.Kind).
		Str("recipient", email.To).
		Str("channel", channel).
		Msg("failed to deliver notification")
}

// LogDeliveryFailure records a swallowed delivery error.
func LogDeliveryFailure(logger zerolog.Logger, err error, n Notifier, email Email) {
	logNotifyError(logger, err, notifierChannelName(n), email)
}

func notifierChannelName(n Notifier) string {
	type named interface {
		String() string
	}
	if v, ok := n.(named); ok {
		return v.String()
	}
	return fmt.Sprintf("%T", n)
}
