// Package telegram implements the Telegram Bot interface for CodeGrind Hub.
// This package is the entry point for all Telegram interactions: it receives
// updates, counts solves from posted code blocks, and routes commands.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/codegrind-hub/codegrind-bot/internal/application/command"
	"github.com/codegrind-hub/codegrind-bot/internal/application/query"
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/external/telegram"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/handler"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/middleware"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// BOT CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// BotConfig contains configuration for the Telegram bot.
type BotConfig struct {
	// Token is the Telegram Bot API token.
	Token string

	// OwnerTelegramID is the bot owner; always an admin.
	OwnerTelegramID int64

	// AdminIDs are additional admin Telegram IDs.
	AdminIDs []int64

	// Debug enables debug logging.
	Debug bool

	// Logger for structured logging.
	Logger *slog.Logger

	// GracefulShutdownTimeout bounds how long Stop waits for in-flight
	// updates.
	GracefulShutdownTimeout time.Duration
}

// DefaultBotConfig returns sensible defaults.
func DefaultBotConfig(token string) BotConfig {
	return BotConfig{
		Token:                   token,
		Logger:                  slog.Default(),
		GracefulShutdownTimeout: 30 * time.Second,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// BOT DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// BotDependencies contains all application-layer dependencies.
type BotDependencies struct {
	// Commands
	RecordSolveCmd  *command.RecordSolveHandler
	DailyPuzzleCmd  *command.RecordDailyPuzzleHandler
	ModifySolvesCmd *command.ModifySolvesHandler
	SetGoalCmd      *command.SetGoalHandler

	// Queries
	LeaderboardQuery *query.GetLeaderboardHandler
	StatsQuery       *query.GetMemberStatsHandler
	TopStreaksQuery  *query.GetTopStreaksHandler
	ProgressQuery    *query.GetProgressHandler
	ReportQuery      *query.GetMemberReportHandler

	// Content
	Quotes  handler.QuoteSource
	Puzzles handler.PuzzleSource

	// Roster is shared with the inactivity sweep; created when nil.
	Roster *Roster
}

// ══════════════════════════════════════════════════════════════════════════════
// BOT
// ══════════════════════════════════════════════════════════════════════════════

// Bot is the main Telegram bot controller.
type Bot struct {
	config BotConfig
	client *telegram.Client
	router *Router
	roster *Roster
	logger *slog.Logger

	memberPresenter *presenter.MemberPresenter
	recordSolveCmd  *command.RecordSolveHandler

	authMiddleware     *middleware.AuthMiddleware
	recoveryMiddleware *middleware.RecoveryMiddleware

	running   bool
	runningMu sync.RWMutex
	wg        sync.WaitGroup

	stats *BotStats
}

// BotStats holds runtime statistics.
type BotStats struct {
	mu              sync.RWMutex
	StartedAt       time.Time
	UpdatesReceived int64
	UpdatesHandled  int64
	SolvesRecorded  int64
	ErrorsCount     int64
	CommandsCount   map[string]int64
}

// NewBot creates a new Telegram bot with all dependencies wired.
func NewBot(config BotConfig, deps BotDependencies) (*Bot, error) {
	if config.Token == "" {
		return nil, errors.New("telegram token is required")
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	clientConfig := telegram.DefaultClientConfig(config.Token)
	clientConfig.Logger = config.Logger
	clientConfig.Debug = config.Debug
	client := telegram.NewClient(clientConfig)

	roster := deps.Roster
	if roster == nil {
		roster = NewRoster()
	}

	leaderboardPresenter := presenter.NewLeaderboardPresenter()
	memberPresenter := presenter.NewMemberPresenter()

	router := NewRouter(RouterConfig{
		Logger:     config.Logger,
		Debug:      config.Debug,
		Members:    roster,
		Recipients: roster,
	})

	router.RegisterCommand("leaderboard", handler.NewLeaderboardHandler(deps.LeaderboardQuery, leaderboardPresenter))
	router.RegisterCommand("stats", handler.NewStatsHandler(deps.StatsQuery, memberPresenter))
	router.RegisterCommand("streak", handler.NewStreakHandler(deps.StatsQuery, memberPresenter))
	router.RegisterCommand("top_streaks", handler.NewTopStreaksHandler(deps.TopStreaksQuery, leaderboardPresenter))
	router.RegisterCommand("set_goal", handler.NewSetGoalHandler(deps.SetGoalCmd, memberPresenter))
	router.RegisterCommand("progress", handler.NewProgressHandler(deps.ProgressQuery, memberPresenter))
	router.RegisterCommand("daily_puzzle", handler.NewDailyPuzzleHandler(deps.DailyPuzzleCmd, deps.Puzzles))
	router.RegisterCommand("motivate", handler.NewMotivateHandler(deps.Quotes))
	router.RegisterCommand("help", handler.NewHelpHandler())

	router.RegisterAdminCommand("modify_solves", handler.NewModifySolvesHandler(deps.ModifySolvesCmd, roster, memberPresenter))
	router.RegisterAdminCommand("user_report", handler.NewUserReportHandler(deps.ReportQuery, roster, memberPresenter))
	router.RegisterAdminCommand("send", handler.NewSendHandler())

	bot := &Bot{
		config:             config,
		client:             client,
		router:             router,
		roster:             roster,
		logger:             config.Logger,
		memberPresenter:    memberPresenter,
		recordSolveCmd:     deps.RecordSolveCmd,
		authMiddleware:     middleware.NewAuthMiddleware(config.OwnerTelegramID, config.AdminIDs),
		recoveryMiddleware: middleware.NewRecoveryMiddleware(config.Logger),
		stats: &BotStats{
			CommandsCount: make(map[string]int64),
		},
	}

	return bot, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LIFECYCLE
// ══════════════════════════════════════════════════════════════════════════════

// Start verifies the token and begins long polling. Blocks until the
// context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.runningMu.Lock()
	if b.running {
		b.runningMu.Unlock()
		return errors.New("bot is already running")
	}
	b.running = true
	b.stats.mu.Lock()
	b.stats.StartedAt = time.Now()
	b.stats.mu.Unlock()
	b.runningMu.Unlock()

	b.logger.Info("starting telegram bot", "debug", b.config.Debug)

	if err := b.verifyToken(ctx); err != nil {
		return fmt.Errorf("failed to verify bot token: %w", err)
	}

	return b.client.StartPolling(ctx, func(ctx context.Context, update *telegram.Update) error {
		return b.handleUpdate(ctx, update)
	})
}

// Stop waits for in-flight updates to finish.
func (b *Bot) Stop(ctx context.Context) error {
	b.runningMu.Lock()
	if !b.running {
		b.runningMu.Unlock()
		return nil
	}
	b.running = false
	b.runningMu.Unlock()

	b.logger.Info("stopping telegram bot")

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("all handlers completed")
	case <-time.After(b.config.GracefulShutdownTimeout):
		b.logger.Warn("graceful shutdown timeout exceeded")
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

// IsRunning reports whether the bot is running.
func (b *Bot) IsRunning() bool {
	b.runningMu.RLock()
	defer b.runningMu.RUnlock()
	return b.running
}

func (b *Bot) verifyToken(ctx context.Context) error {
	me, err := b.client.GetMe(ctx)
	if err != nil {
		return err
	}

	b.logger.Info("bot verified", "id", me.ID, "username", me.Username)
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE HANDLING
// ══════════════════════════════════════════════════════════════════════════════

// handleUpdate processes a single Telegram update.
func (b *Bot) handleUpdate(ctx context.Context, update *telegram.Update) error {
	b.wg.Add(1)
	defer b.wg.Done()

	b.stats.mu.Lock()
	b.stats.UpdatesReceived++
	b.stats.mu.Unlock()

	if update.Message == nil {
		return nil
	}

	err := b.handleMessage(ctx, update.Message)

	b.stats.mu.Lock()
	if err != nil {
		b.stats.ErrorsCount++
	} else {
		b.stats.UpdatesHandled++
	}
	b.stats.mu.Unlock()

	if err != nil {
		b.logger.Error("failed to handle update",
			"update_id", update.UpdateID, "error", err)
	}

	return err
}

// handleMessage processes one Telegram message: commands are routed,
// messages containing a code block count as a solve.
func (b *Bot) handleMessage(ctx context.Context, msg *telegram.Message) error {
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil
	}

	b.roster.Observe(msg.From, msg.Chat.ID)

	if msg.From.IsBot {
		return nil
	}

	if cmd := telegram.ExtractCommand(msg); cmd != "" {
		return b.handleCommand(ctx, cmd, telegram.ExtractCommandArgs(msg), msg)
	}

	if telegram.HasCodeBlock(msg) {
		return b.handleCodeBlock(ctx, msg)
	}

	return nil
}

// handleCommand routes a bot command through auth and panic recovery.
func (b *Bot) handleCommand(ctx context.Context, cmd, args string, msg *telegram.Message) error {
	b.stats.mu.Lock()
	b.stats.CommandsCount[cmd]++
	b.stats.mu.Unlock()

	telegramID := msg.From.ID
	chatID := msg.Chat.ID

	cmdCtx := CommandContext{
		MemberID:    tracker.MemberID(strconv.FormatInt(telegramID, 10)),
		DisplayName: msg.From.FullName(),
		TelegramID:  telegramID,
		ChatID:      chatID,
		MessageID:   int(msg.MessageID),
		Args:        args,
		Message:     msg,
		IsAdmin:     b.authMiddleware.IsAdmin(telegramID),
		Client:      b.client,
	}

	err := b.recoveryMiddleware.Wrap(cmd, func() error {
		return b.router.HandleCommand(ctx, cmd, cmdCtx)
	})
	if err != nil {
		b.logger.Error("command failed", "command", cmd, "telegram_id", telegramID, "error", err)
		_, sendErr := b.client.SendHTML(ctx, chatID, middleware.RecoveredMessage)
		if sendErr != nil {
			return sendErr
		}
	}

	return nil
}

// handleCodeBlock records a solve for a message containing a code block
// and confirms it in the chat.
func (b *Bot) handleCodeBlock(ctx context.Context, msg *telegram.Message) error {
	memberID := tracker.MemberID(strconv.FormatInt(msg.From.ID, 10))

	result, err := b.recordSolve(ctx, memberID, msg.From.FullName())
	if err != nil {
		b.logger.Error("failed to record solve",
			"member_id", memberID, "error", err)
		return err
	}

	b.stats.mu.Lock()
	b.stats.SolvesRecorded++
	b.stats.mu.Unlock()

	_, err = b.client.SendHTML(ctx, msg.Chat.ID,
		b.memberPresenter.FormatSolveRecorded(msg.From.FullName(), result))
	return err
}

func (b *Bot) recordSolve(ctx context.Context, memberID tracker.MemberID, displayName string) (result *command.RecordSolveResult, err error) {
	err = b.recoveryMiddleware.Wrap("code_block", func() error {
		var handleErr error
		result, handleErr = b.recordSolveCmd.Handle(ctx, command.RecordSolveCommand{
			MemberID:    memberID,
			DisplayName: displayName,
		})
		return handleErr
	})
	return result, err
}

// ══════════════════════════════════════════════════════════════════════════════
// ACCESSORS AND STATISTICS
// ══════════════════════════════════════════════════════════════════════════════

// Client returns the Telegram client for direct API access.
func (b *Bot) Client() *telegram.Client {
	return b.client
}

// Router returns the router for handler registration.
func (b *Bot) Router() *Router {
	return b.router
}

// Roster returns the member roster.
func (b *Bot) Roster() *Roster {
	return b.roster
}

// GetStats returns current bot statistics.
func (b *Bot) GetStats() map[string]interface{} {
	b.stats.mu.RLock()
	defer b.stats.mu.RUnlock()

	commandsCopy := make(map[string]int64, len(b.stats.CommandsCount))
	for k, v := range b.stats.CommandsCount {
		commandsCopy[k] = v
	}

	return map[string]interface{}{
		"started_at":       b.stats.StartedAt,
		"uptime":           time.Since(b.stats.StartedAt).String(),
		"updates_received": b.stats.UpdatesReceived,
		"updates_handled":  b.stats.UpdatesHandled,
		"solves_recorded":  b.stats.SolvesRecorded,
		"errors_count":     b.stats.ErrorsCount,
		"commands_count":   commandsCopy,
		"running":          b.IsRunning(),
	}
}
