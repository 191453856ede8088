package handler

import (
	"context"
	"fmt"

	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/presenter"
)

// QuoteSource supplies motivational quotes.
type QuoteSource interface {
	Quote() string
}

// MotivateRequest contains parameters for /motivate.
type MotivateRequest struct {
	// Target is an optional label the quote is addressed to, as typed
	// (e.g. "@alice"). Empty means no addressee.
	Target string
}

// MotivateHandler handles /motivate.
type MotivateHandler struct {
	quotes QuoteSource
}

// NewMotivateHandler creates the handler.
func NewMotivateHandler(quotes QuoteSource) *MotivateHandler {
	return &MotivateHandler{quotes: quotes}
}

// Handle returns a random motivational quote, optionally addressed to a
// member.
func (h *MotivateHandler) Handle(ctx context.Context, req MotivateRequest) (string, error) {
	quote := fmt.Sprintf("💬 <i>%s</i>", presenter.Escape(h.quotes.Quote()))
	if req.Target != "" {
		return fmt.Sprintf("<b>%s</b>, this one is for you:\n%s", presenter.Escape(req.Target), quote), nil
	}
	return quote, nil
}
