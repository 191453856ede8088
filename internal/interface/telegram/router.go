// Package telegram implements the Telegram Bot interface for CodeGrind Hub.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/external/telegram"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/handler"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/middleware"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROUTER CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// RecipientResolver maps a /send destination to a chat ID.
type RecipientResolver interface {
	ResolveChat(arg string) (int64, bool)
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	// Logger for structured logging.
	Logger *slog.Logger

	// Debug enables debug logging for routing decisions.
	Debug bool

	// Members resolves @username / numeric-ID command arguments.
	Members handler.MemberResolver

	// Recipients resolves /send destinations.
	Recipients RecipientResolver
}

// ══════════════════════════════════════════════════════════════════════════════
// CONTEXT TYPES
// ══════════════════════════════════════════════════════════════════════════════

// CommandContext contains context for command handling.
type CommandContext struct {
	// MemberID is the sender's member ID (stringified Telegram ID).
	MemberID tracker.MemberID

	// DisplayName is the sender's full name.
	DisplayName string

	// TelegramID is the sender's Telegram ID.
	TelegramID int64

	// ChatID is the chat the command was sent in.
	ChatID int64

	// MessageID is the ID of the message containing the command.
	MessageID int

	// Args is the command arguments (text after the command).
	Args string

	// Message is the original Telegram message.
	Message *telegram.Message

	// IsAdmin is true when the sender may run admin commands.
	IsAdmin bool

	// Client is the Telegram client for sending responses.
	Client *telegram.Client
}

// CommandHandler is the fallback interface for command handlers that
// deliver their own responses.
type CommandHandler interface {
	Handle(ctx context.Context, cmdCtx CommandContext) error
}

// ══════════════════════════════════════════════════════════════════════════════
// ROUTER
// Routes incoming commands to their handlers and delivers the replies.
// ══════════════════════════════════════════════════════════════════════════════

// Router routes bot commands to registered handlers.
type Router struct {
	config RouterConfig
	logger *slog.Logger

	commandHandlers   map[string]interface{}
	adminOnly         map[string]bool
	commandHandlersMu sync.RWMutex

	defaultCommandHandler func(ctx context.Context, cmdCtx CommandContext) error
}

// NewRouter creates a new router.
func NewRouter(config RouterConfig) *Router {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	r := &Router{
		config:          config,
		logger:          config.Logger,
		commandHandlers: make(map[string]interface{}),
		adminOnly:       make(map[string]bool),
	}

	r.defaultCommandHandler = r.handleUnknownCommand

	return r
}

// RegisterCommand registers a handler for a command (without the leading "/").
func (r *Router) RegisterCommand(command string, h interface{}) {
	r.commandHandlersMu.Lock()
	defer r.commandHandlersMu.Unlock()

	r.commandHandlers[command] = h

	if r.config.Debug {
		r.logger.Debug("registered command handler", "command", command)
	}
}

// RegisterAdminCommand registers a handler only admins may invoke.
func (r *Router) RegisterAdminCommand(command string, h interface{}) {
	r.RegisterCommand(command, h)

	r.commandHandlersMu.Lock()
	defer r.commandHandlersMu.Unlock()
	r.adminOnly[command] = true
}

// SetDefaultCommandHandler sets the handler for unknown commands.
func (r *Router) SetDefaultCommandHandler(h func(ctx context.Context, cmdCtx CommandContext) error) {
	r.defaultCommandHandler = h
}

// ══════════════════════════════════════════════════════════════════════════════
// ROUTING
// ══════════════════════════════════════════════════════════════════════════════

// HandleCommand routes a command to its handler.
func (r *Router) HandleCommand(ctx context.Context, command string, cmdCtx CommandContext) error {
	r.commandHandlersMu.RLock()
	h, ok := r.commandHandlers[command]
	restricted := r.adminOnly[command]
	r.commandHandlersMu.RUnlock()

	if !ok {
		if r.config.Debug {
			r.logger.Debug("no handler for command", "command", command)
		}
		return r.defaultCommandHandler(ctx, cmdCtx)
	}

	if restricted && !cmdCtx.IsAdmin {
		r.logger.Warn("admin command denied",
			"command", command, "telegram_id", cmdCtx.TelegramID)
		return r.sendReply(ctx, cmdCtx, middleware.DeniedMessage)
	}

	return r.executeCommandHandler(ctx, h, command, cmdCtx)
}

// executeCommandHandler executes a command handler based on its type.
func (r *Router) executeCommandHandler(ctx context.Context, h interface{}, command string, cmdCtx CommandContext) error {
	switch h := h.(type) {
	case *handler.LeaderboardHandler:
		reply, err := h.Handle(ctx, handler.LeaderboardRequest{
			RequesterID: cmdCtx.MemberID.String(),
			Limit:       parseLimitArg(cmdCtx.Args),
		})
		return r.deliver(ctx, cmdCtx, reply, err)

	case *handler.StatsHandler:
		target, denial := r.resolveTarget(cmdCtx)
		if denial != "" {
			return r.sendReply(ctx, cmdCtx, denial)
		}
		reply, err := h.Handle(ctx, handler.StatsRequest{MemberID: target})
		return r.deliver(ctx, cmdCtx, reply, err)

	case *handler.StreakHandler:
		reply, err := h.Handle(ctx, handler.StatsRequest{MemberID: cmdCtx.MemberID})
		return r.deliver(ctx, cmdCtx, reply, err)

	case *handler.TopStreaksHandler:
		reply, err := h.Handle(ctx, handler.TopStreaksRequest{Limit: parseLimitArg(cmdCtx.Args)})
		return r.deliver(ctx, cmdCtx, reply, err)

	case *handler.SetGoalHandler:
		reply, err := h.Handle(ctx, handler.SetGoalRequest{
			MemberID:    cmdCtx.MemberID,
			DisplayName: cmdCtx.DisplayName,
			Args:        cmdCtx.Args,
		})
		return r.deliver(ctx, cmdCtx, reply, err)

	case *handler.ProgressHandler:
		reply, err := h.Handle(ctx, handler.ProgressRequest{MemberID: cmdCtx.MemberID})
		return r.deliver(ctx, cmdCtx, reply, err)

	case *handler.DailyPuzzleHandler:
		reply, err := h.Handle(ctx, handler.DailyPuzzleRequest{
			MemberID:    cmdCtx.MemberID,
			DisplayName: cmdCtx.DisplayName,
		})
		return r.deliver(ctx, cmdCtx, reply, err)

	case *handler.MotivateHandler:
		reply, err := h.Handle(ctx, handler.MotivateRequest{Target: strings.TrimSpace(cmdCtx.Args)})
		return r.deliver(ctx, cmdCtx, reply, err)

	case *handler.HelpHandler:
		reply, err := h.Handle(ctx, handler.HelpRequest{IsAdmin: cmdCtx.IsAdmin})
		return r.deliver(ctx, cmdCtx, reply, err)

	case *handler.ModifySolvesHandler:
		reply, err := h.Handle(ctx, handler.ModifySolvesRequest{
			AdminID: cmdCtx.MemberID,
			Args:    cmdCtx.Args,
		})
		return r.deliver(ctx, cmdCtx, reply, err)

	case *handler.UserReportHandler:
		return r.handleUserReport(ctx, h, cmdCtx)

	case *handler.SendHandler:
		return r.handleSend(ctx, h, cmdCtx)

	case CommandHandler:
		return h.Handle(ctx, cmdCtx)

	default:
		r.logger.Warn("unknown handler type", "command", command, "type", fmt.Sprintf("%T", h))
		return r.defaultCommandHandler(ctx, cmdCtx)
	}
}

// handleUserReport delivers the report to the admin's private chat so
// member details never land in the group.
func (r *Router) handleUserReport(ctx context.Context, h *handler.UserReportHandler, cmdCtx CommandContext) error {
	reply, err := h.Handle(ctx, handler.UserReportRequest{Args: cmdCtx.Args})
	if err != nil {
		return err
	}

	if _, err := cmdCtx.Client.SendHTML(ctx, cmdCtx.TelegramID, reply); err != nil {
		if telegram.IsUserBlocked(err) {
			return r.sendReply(ctx, cmdCtx,
				"📪 I can't message you privately — start a chat with me first.")
		}
		return err
	}

	// Acknowledge in the group so the command doesn't look ignored.
	if cmdCtx.ChatID != cmdCtx.TelegramID {
		return r.sendReply(ctx, cmdCtx, "📬 Report sent to your private chat.")
	}
	return nil
}

// handleSend relays an announcement verbatim to the destination chat.
func (r *Router) handleSend(ctx context.Context, h *handler.SendHandler, cmdCtx CommandContext) error {
	parsed, ok := h.Parse(handler.SendRequest{Args: cmdCtx.Args})
	if !ok {
		return r.sendReply(ctx, cmdCtx, handler.SendUsage)
	}

	chatID, ok := r.resolveChat(parsed.Destination)
	if !ok {
		return r.sendReply(ctx, cmdCtx,
			"🤷 Unknown destination: "+presenter.Escape(parsed.Destination))
	}

	if _, err := cmdCtx.Client.SendHTML(ctx, chatID, presenter.Escape(parsed.Text)); err != nil {
		if telegram.IsUserBlocked(err) {
			return r.sendReply(ctx, cmdCtx,
				"📪 Can't deliver there: the bot is blocked or lacks access.")
		}
		return err
	}

	if chatID != cmdCtx.ChatID {
		return r.sendReply(ctx, cmdCtx, "📨 Sent.")
	}
	return nil
}

// resolveTarget picks the member a read command refers to: an explicit
// argument wins, then the replied-to author, then the sender.
func (r *Router) resolveTarget(cmdCtx CommandContext) (tracker.MemberID, string) {
	arg := strings.TrimSpace(cmdCtx.Args)
	if arg != "" && r.config.Members != nil {
		id, ok := r.config.Members.Resolve(arg)
		if !ok {
			return "", "🤷 Unknown member: " + presenter.Escape(arg)
		}
		return id, ""
	}

	if msg := cmdCtx.Message; msg != nil && msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		return tracker.MemberID(strconv.FormatInt(msg.ReplyToMessage.From.ID, 10)), ""
	}

	return cmdCtx.MemberID, ""
}

func (r *Router) resolveChat(destination string) (int64, bool) {
	if r.config.Recipients == nil {
		return 0, false
	}
	return r.config.Recipients.ResolveChat(destination)
}

// ══════════════════════════════════════════════════════════════════════════════
// DEFAULT HANDLER AND HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// handleUnknownCommand handles commands without a registered handler.
func (r *Router) handleUnknownCommand(ctx context.Context, cmdCtx CommandContext) error {
	text := "❓ <b>Unknown command.</b>\n\n" +
		"Try /help for the list of commands."
	return r.sendReply(ctx, cmdCtx, text)
}

func (r *Router) deliver(ctx context.Context, cmdCtx CommandContext, reply string, err error) error {
	if err != nil {
		return err
	}
	if reply == "" {
		return nil
	}
	return r.sendReply(ctx, cmdCtx, reply)
}

func (r *Router) sendReply(ctx context.Context, cmdCtx CommandContext, text string) error {
	_, err := cmdCtx.Client.SendHTML(ctx, cmdCtx.ChatID, text)
	return err
}

// parseLimitArg parses an optional numeric limit argument; anything else
// falls back to the handler default.
func parseLimitArg(args string) int {
	args = strings.TrimSpace(args)
	if args == "" {
		return 0
	}
	n, err := strconv.Atoi(args)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// GetRegisteredCommands returns the registered command names.
func (r *Router) GetRegisteredCommands() []string {
	r.commandHandlersMu.RLock()
	defer r.commandHandlersMu.RUnlock()

	commands := make([]string, 0, len(r.commandHandlers))
	for cmd := range r.commandHandlers {
		commands = append(commands, cmd)
	}
	return commands
}
