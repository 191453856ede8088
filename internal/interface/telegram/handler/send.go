package handler

import (
	"strings"
)

// SendUsage is shown when the arguments cannot be parsed.
const SendUsage = "Usage: /send &lt;chat&gt; &lt;text&gt;\nExample: <code>/send @alice see you at the contest</code>"

// SendRequest contains parameters for /send.
type SendRequest struct {
	Args string
}

// SendResult is a parsed relay request: text to deliver verbatim to a
// destination chat.
type SendResult struct {
	Destination string
	Text        string
}

// SendHandler parses the admin /send command. Delivery is the router's
// job since the destination is another chat.
type SendHandler struct{}

// NewSendHandler creates the handler.
func NewSendHandler() *SendHandler {
	return &SendHandler{}
}

// Parse splits "<destination> <text>". Returns false when either part
// is missing.
func (h *SendHandler) Parse(req SendRequest) (*SendResult, bool) {
	parts := strings.SplitN(strings.TrimSpace(req.Args), " ", 2)
	if len(parts) != 2 {
		return nil, false
	}

	text := strings.TrimSpace(parts[1])
	if text == "" {
		return nil, false
	}

	return &SendResult{Destination: parts[0], Text: text}, true
}
