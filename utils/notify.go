package utils

import (
	"go.uber.org/zap"
)

// Notifier surfaces user-visible outcomes (the toast/alert channel of the UI).
// Every failure path in the client ends in a Notifier call, never in a panic.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// ZapNotifier writes notifications through the global logger.
type ZapNotifier struct {
	Logger *zap.Logger
}

func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	return &ZapNotifier{Logger: logger}
}

func (n *ZapNotifier) Success(message string) {
	n.Logger.Info(message, zap.String("notice", "success"))
}

func (n *ZapNotifier) Error(message string) {
	n.Logger.Warn(message, zap.String("notice", "error"))
}
