// Package main - точка входа Telegram-бота CodeGrind Hub.
//
// Бот ведёт учёт активности участников сообщества: сообщение с блоком
// кода засчитывается как решённая задача, по UTC-дням считаются серии,
// а молчавших больше суток бот мягко подталкивает вернуться.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries)
// - Infrastructure: персистентность, планировщик, Telegram API
// - Interface: Telegram Bot handlers
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/codegrind-hub/codegrind-bot/config"

	// Application layer
	"github.com/codegrind-hub/codegrind-bot/internal/application/command"
	"github.com/codegrind-hub/codegrind-bot/internal/application/query"

	// Domain layer
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"

	// Infrastructure layer
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/content"
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/messaging"
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/persistence/jsonfile"
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/persistence/redis"
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/scheduler"
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/scheduler/jobs"
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/service"

	// Interface layer
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// ─────────────────────────────────────────────────────────────────────────
	// 1. КОНФИГУРАЦИЯ И ЛОГИРОВАНИЕ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg)
	log.Info("starting CodeGrind Bot",
		"env", cfg.App.Environment,
		"debug", cfg.App.Debug,
		"version", cfg.App.Version,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 2. ПЕРСИСТЕНТНОСТЬ: ЗАГРУЗКА ДАННЫХ ИЗ JSON-ФАЙЛА
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("loading activity data...", "path", cfg.Storage.DataFile)

	persister := jsonfile.New(cfg.Storage.DataFile, log)
	store, err := persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load activity data: %w", err)
	}
	log.Info("activity data loaded", "members", store.Len())

	agg := tracker.NewAggregator(store)

	// Общий мьютекс для write-through команд: чтение-модификация-запись
	// записи и её сохранение должны быть атомарны.
	var storeMu sync.Mutex

	// ─────────────────────────────────────────────────────────────────────────
	// 3. EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	eventBus := messaging.NewInMemoryEventBus(log)
	defer func() {
		log.Info("closing event bus...")
		_ = eventBus.Close()
	}()

	if err := messaging.RegisterAuditLog(eventBus, log); err != nil {
		return fmt.Errorf("failed to register audit log: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. REDIS (опциональный кеш отображаемых рангов)
	// ─────────────────────────────────────────────────────────────────────────
	var rankCache query.RankCache

	if cfg.Redis.Enabled {
		log.Info("connecting to Redis...", "addr", cfg.Redis.Addr)

		redisCfg := redis.DefaultConfig()
		redisCfg.Addr = cfg.Redis.Addr
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		cache, err := redis.NewCache(redisCfg)
		if err != nil {
			log.Warn("failed to connect to Redis, rank caching disabled", "error", err)
		} else {
			defer cache.Close()

			rc := redis.NewRankCache(cache, log)
			if err := rc.RegisterInvalidation(eventBus); err != nil {
				return fmt.Errorf("failed to register rank cache invalidation: %w", err)
			}
			rankCache = rc
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	recordSolveCmd := command.NewRecordSolveHandler(store, persister, eventBus, &storeMu)
	dailyPuzzleCmd := command.NewRecordDailyPuzzleHandler(store, persister, eventBus, &storeMu)
	modifySolvesCmd := command.NewModifySolvesHandler(store, persister, eventBus, &storeMu)
	setGoalCmd := command.NewSetGoalHandler(store, persister, eventBus, &storeMu)

	statsQuery := query.NewGetMemberStatsHandler(agg, rankCache)
	leaderboardQuery := query.NewGetLeaderboardHandler(agg)
	topStreaksQuery := query.NewGetTopStreaksHandler(agg)
	progressQuery := query.NewGetProgressHandler(agg)
	reportQuery := query.NewGetMemberReportHandler(statsQuery, agg)

	// ─────────────────────────────────────────────────────────────────────────
	// 6. TELEGRAM BOT
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing Telegram bot...")

	provider := content.NewProvider()
	roster := telegram.NewRoster()

	botConfig := telegram.DefaultBotConfig(cfg.Telegram.Token)
	botConfig.OwnerTelegramID = cfg.Telegram.OwnerTelegramID
	botConfig.AdminIDs = cfg.Telegram.AdminIDs
	botConfig.Debug = cfg.App.Debug
	botConfig.Logger = log
	botConfig.GracefulShutdownTimeout = cfg.App.ShutdownTimeout

	bot, err := telegram.NewBot(botConfig, telegram.BotDependencies{
		RecordSolveCmd:   recordSolveCmd,
		DailyPuzzleCmd:   dailyPuzzleCmd,
		ModifySolvesCmd:  modifySolvesCmd,
		SetGoalCmd:       setGoalCmd,
		LeaderboardQuery: leaderboardQuery,
		StatsQuery:       statsQuery,
		TopStreaksQuery:  topStreaksQuery,
		ProgressQuery:    progressQuery,
		ReportQuery:      reportQuery,
		Quotes:           provider,
		Puzzles:          provider,
		Roster:           roster,
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. ПЛАНИРОВЩИК: ПРОВЕРКА НЕАКТИВНОСТИ
	// ─────────────────────────────────────────────────────────────────────────
	var sched *scheduler.Scheduler

	if cfg.Scheduler.Enabled {
		log.Info("initializing scheduler...",
			"sweep_interval", cfg.Scheduler.SweepInterval.String(),
			"inactivity_threshold", cfg.Scheduler.InactivityThreshold.String(),
		)

		notifier := service.NewNotificationService(bot.Client(), log)

		sweepJob := jobs.NewInactivitySweepJob(store, &storeMu, roster, notifier, eventBus, log, jobs.SweepConfig{
			Threshold: cfg.Scheduler.InactivityThreshold,
		})

		sched = scheduler.New(log, cfg.Scheduler.Tick)
		if err := sched.Register(sweepJob, scheduler.NewIntervalSchedule(cfg.Scheduler.SweepInterval)); err != nil {
			return fmt.Errorf("failed to register inactivity sweep: %w", err)
		}

		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	} else {
		log.Info("scheduler disabled")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. ЗАПУСК И GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	errCh := make(chan error, 1)

	go func() {
		if err := bot.Start(ctx); err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("telegram bot error: %w", err)
		}
	}()

	log.Info("CodeGrind Bot is running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		log.Error("service error", "error", err)
		return err
	}

	log.Info("starting graceful shutdown...", "timeout", cfg.App.ShutdownTimeout.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	var shutdownErr error

	if sched != nil {
		log.Info("stopping scheduler...")
		if err := sched.Stop(); err != nil {
			log.Error("failed to stop scheduler", "error", err)
			shutdownErr = err
		}
	}

	log.Info("stopping Telegram bot...")
	if err := bot.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop bot gracefully", "error", err)
		shutdownErr = err
	}

	// Финальное сохранение состояния.
	storeMu.Lock()
	if err := persister.Save(shutdownCtx, store); err != nil {
		log.Error("failed to save activity data on shutdown", "error", err)
		shutdownErr = err
	}
	storeMu.Unlock()

	if shutdownErr != nil {
		log.Warn("shutdown completed with errors")
	} else {
		log.Info("shutdown completed successfully")
	}

	return nil
}

// setupLogger настраивает структурированное логирование.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Observability.LogLevel),
	}

	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "text" || cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
