package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// RecoveredMessage is the generic reply after a handler panic.
const RecoveredMessage = "😔 Something went wrong. Please try again later."

// RecoveryMiddleware turns handler panics into errors so one bad update
// cannot take the bot down.
type RecoveryMiddleware struct {
	logger *slog.Logger
}

// NewRecoveryMiddleware creates the middleware.
func NewRecoveryMiddleware(logger *slog.Logger) *RecoveryMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecoveryMiddleware{logger: logger}
}

// Wrap runs fn, converting a panic into an error with the stack logged.
func (m *RecoveryMiddleware) Wrap(command string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("panic recovered in command handler",
				"command", command,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("command %s panicked: %v", command, r)
		}
	}()

	return fn()
}
