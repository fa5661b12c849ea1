package notify

import "log"

// Notifier receives the human-readable messages mutations produce. It is
// a fire-and-forget collaborator; nothing about cart or favorites
// correctness depends on it.
type Notifier interface {
	Success(message string)
	Info(message string)
	Error(message string)
}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(message string) { n.logger.Printf("success: %s", message) }
func (n *LogNotifier) Info(message string)    { n.logger.Printf("info: %s", message) }
func (n *LogNotifier) Error(message string)   { n.logger.Printf("error: %s", message) }

// Nop discards all notifications.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Info(string)    {}
func (Nop) Error(string)   {}
