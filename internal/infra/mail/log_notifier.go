package mail

import (
	"context"
	"log"
)

// LogNotifier only prints the message. It is the default when no SMTP server
// or queue is configured.
type LogNotifier struct {
	Logger *log.Logger
}

func NewLogNotifier(l *log.Logger) *LogNotifier {
	if l == nil {
		l = log.Default()
	}
	return &LogNotifier{Logger: l}
}

func (n *LogNotifier) Notify(_ context.Context, to, subject, body string) error {
	n.Logger.Printf("[EMAIL] To: %s, Subject: %s, Body: %s", to, subject, body)
	return nil
}
