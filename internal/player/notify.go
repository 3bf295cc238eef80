package player

import (
	"github.com/statik-fm/rhythm/internal/logger"
)

// Notifier surfaces non-blocking user-visible notifications. Every
// failure path in the playback core produces exactly one notification;
// none of them ever blocks or interrupts playback.
type Notifier interface {
	Info(message string)
	Warn(message string)
	Error(message string)
}

// LogNotifier is the default Notifier, writing through the structured logger.
type LogNotifier struct{}

// Info logs an informational notification
func (LogNotifier) Info(message string) {
	logger.Log.Info().Str("notification", message).Msg("Player notification")
}

// Warn logs a warning notification
func (LogNotifier) Warn(message string) {
	logger.Log.Warn().Str("notification", message).Msg("Player notification")
}

// Error logs an error notification
func (LogNotifier) Error(message string) {
	logger.Log.Error().Str("notification", message).Msg("Player notification")
}
