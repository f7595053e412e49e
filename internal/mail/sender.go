package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// Sender delivers account notifications. Delivery failure is reported to the
// caller but is never fatal to the flow that triggered it.
type Sender interface {
	SendPasswordReset(ctx context.Context, toEmail, displayName, resetURL string) error
}

// LogSender writes the reset URL to the log instead of sending anything.
// Used when no SMTP host is configured.
type LogSender struct {
	lg zerolog.Logger
}

func NewLogSender(lg zerolog.Logger) *LogSender {
	return &LogSender{lg: lg.With().Str("component", "log_sender").Logger()}
}

func (s *LogSender) SendPasswordReset(_ context.Context, toEmail, _ string, resetURL string) error {
	s.lg.Info().
		Str("to", toEmail).
		Str("reset_url", resetURL).
		Msg("password reset email (not sent, SMTP disabled)")
	return nil
}
