package notifier

import "log"

// Notifier is an interface so the delivery channel can change
// (Email/Slack/SMS) without touching the worker.
type Notifier interface {
	Notify(subject, message string) error
}

// ConsoleNotifier logs to stdout.
type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s\n", subject, message)
	return nil
}
