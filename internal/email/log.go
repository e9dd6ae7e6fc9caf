package email

import (
	"context"

	"github.com/ourday/rsvp/internal/logger"
)

// LogSender writes messages to the log instead of delivering them.
// It is meant for local development.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.WithComponent("log_sender")}
}

// Name implements Sender.
func (l *LogSender) Name() string { return "log" }

// Send implements Sender.
func (l *LogSender) Send(_ context.Context, msg Message) error {
	l.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Interface("params", msg.Params).
		Msg("email not delivered (log provider)")
	return nil
}
