package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commandMessage(text string) *Message {
	cmdLen := len(text)
	for i, r := range text {
		if r == ' ' {
			cmdLen = i
			break
		}
	}
	return &Message{
		Text:     text,
		Entities: []MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}
}

func TestExtractCommand(t *testing.T) {
	assert.Equal(t, "leaderboard", ExtractCommand(commandMessage("/leaderboard")))
	assert.Equal(t, "stats", ExtractCommand(commandMessage("/stats @alice")))
	assert.Equal(t, "help", ExtractCommand(commandMessage("/help@codegrind_bot")))
	assert.Empty(t, ExtractCommand(&Message{Text: "plain text"}))
	assert.Empty(t, ExtractCommand(nil))
}

func TestExtractCommandArgs(t *testing.T) {
	assert.Equal(t, "@alice", ExtractCommandArgs(commandMessage("/stats @alice")))
	assert.Equal(t, "50", ExtractCommandArgs(commandMessage("/set_goal 50")))
	assert.Empty(t, ExtractCommandArgs(commandMessage("/leaderboard")))
}

func TestHasCodeBlock(t *testing.T) {
	assert.True(t, HasCodeBlock(&Message{
		Text:     "solved it",
		Entities: []MessageEntity{{Type: "pre", Offset: 0, Length: 9}},
	}))
	assert.True(t, HasCodeBlock(&Message{
		Text:     "x := 1",
		Entities: []MessageEntity{{Type: "code", Offset: 0, Length: 6}},
	}))
	assert.True(t, HasCodeBlock(&Message{Text: "```go\nfunc main() {}\n```"}))
	assert.False(t, HasCodeBlock(&Message{Text: "no code here"}))
	assert.False(t, HasCodeBlock(nil))
}

func TestChatTypeHelpers(t *testing.T) {
	private := &Message{Chat: &Chat{Type: "private"}}
	group := &Message{Chat: &Chat{Type: "supergroup"}}

	assert.True(t, IsPrivateChat(private))
	assert.False(t, IsPrivateChat(group))
	assert.True(t, IsGroupChat(group))
	assert.False(t, IsGroupChat(private))
	assert.False(t, IsGroupChat(nil))
}

func TestSendMessageSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["text"])
		assert.Equal(t, "HTML", body["parse_mode"])

		json.NewEncoder(w).Encode(APIResponse{
			OK:     true,
			Result: json.RawMessage(`{"message_id": 42}`),
		})
	}))
	defer srv.Close()

	cfg := DefaultClientConfig("test-token")
	cfg.BaseURL = srv.URL
	client := NewClient(cfg)

	msg, err := client.SendHTML(context.Background(), 100, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(42), msg.MessageID)
}

func TestSendMessageAPIErrorNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(APIResponse{
			OK:          false,
			ErrorCode:   403,
			Description: "Forbidden: bot was blocked by the user",
		})
	}))
	defer srv.Close()

	cfg := DefaultClientConfig("test-token")
	cfg.BaseURL = srv.URL
	client := NewClient(cfg)

	_, err := client.SendHTML(context.Background(), 100, "hello")
	require.Error(t, err)
	assert.True(t, IsUserBlocked(err))
	assert.Equal(t, 1, calls)
}

func TestIsUserBlocked(t *testing.T) {
	assert.True(t, IsUserBlocked(&APIError{Code: 403, Description: "Forbidden"}))
	assert.True(t, IsUserBlocked(&APIError{Code: 400, Description: "bot was blocked by the user"}))
	assert.False(t, IsUserBlocked(&APIError{Code: 400, Description: "Bad Request: chat not found"}))
	assert.False(t, IsUserBlocked(nil))
}
