// Package mail delivers outgoing account emails.
package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes messages to the structured log instead of sending them.
// It is the delivery used until an SMTP relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.InfoContext(ctx, "outgoing email", "to", to, "subject", subject, "body", body)
	return nil
}
