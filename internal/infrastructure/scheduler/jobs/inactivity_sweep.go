// Package jobs contains the bot's scheduled background jobs.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/shared"
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
)

// ══════════════════════════════════════════════════════════════════════════════
// INACTIVITY SWEEP JOB
// ══════════════════════════════════════════════════════════════════════════════

// Member is one chat member known to the roster.
type Member struct {
	ID          tracker.MemberID
	DisplayName string
	ChatID      int64
	IsBot       bool
}

// MemberLister enumerates the members the bot has seen in its chats.
type MemberLister interface {
	ListMembers(ctx context.Context) ([]Member, error)
}

// InactivityNotifier delivers a nudge to one inactive member.
type InactivityNotifier interface {
	NotifyInactive(ctx context.Context, member Member, lastActive time.Time, inactiveFor time.Duration) error
}

// SweepConfig configures the inactivity sweep.
type SweepConfig struct {
	// Threshold is the inactivity duration after which a member is
	// nudged. Default: 24 hours.
	Threshold time.Duration

	// Timeout bounds a single sweep run.
	Timeout time.Duration
}

// DefaultSweepConfig returns sensible defaults.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Threshold: 24 * time.Hour,
		Timeout:   5 * time.Minute,
	}
}

// SweepStats contains statistics from one sweep run.
type SweepStats struct {
	StartedAt      time.Time
	CompletedAt    time.Time
	Duration       time.Duration
	MembersChecked int
	BotsSkipped    int
	NeverActive    int
	InactiveFound  int
	NotifiedOK     int
	DeliveryErrors int
}

// InactivitySweepJob finds members whose last activity is older than the
// threshold and nudges each of them. Members who never posted are left
// alone: a nudge about "going quiet" only makes sense for someone who
// was active before. Bot accounts are never nudged.
//
// Delivery failures are per-recipient: one blocked chat must not stop
// the rest of the sweep.
type InactivitySweepJob struct {
	store     *tracker.Store
	storeMu   *sync.Mutex
	roster    MemberLister
	notifier  InactivityNotifier
	publisher shared.EventPublisher
	logger    *slog.Logger
	config    SweepConfig

	lastRunStats atomic.Value // *SweepStats
}

// NewInactivitySweepJob creates the sweep job. storeMu is the mutex the
// command handlers hold while mutating the store; the sweep takes it
// only to snapshot last-active times, never during delivery.
func NewInactivitySweepJob(
	store *tracker.Store,
	storeMu *sync.Mutex,
	roster MemberLister,
	notifier InactivityNotifier,
	publisher shared.EventPublisher,
	logger *slog.Logger,
	config SweepConfig,
) *InactivitySweepJob {
	if storeMu == nil {
		storeMu = &sync.Mutex{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.Threshold <= 0 {
		config.Threshold = DefaultSweepConfig().Threshold
	}

	return &InactivitySweepJob{
		store:     store,
		storeMu:   storeMu,
		roster:    roster,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
		config:    config,
	}
}

// Name returns the job name.
func (j *InactivitySweepJob) Name() string {
	return "inactivity_sweep"
}

// Description returns a human-readable description.
func (j *InactivitySweepJob) Description() string {
	return "Nudges members with no recorded activity past the threshold"
}

// Run executes one sweep.
func (j *InactivitySweepJob) Run(ctx context.Context) error {
	now := time.Now().UTC()
	stats := &SweepStats{StartedAt: now}

	if j.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.config.Timeout)
		defer cancel()
	}

	members, err := j.roster.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	stats.MembersChecked = len(members)

	lastActive := j.snapshotLastActive(members)

	for _, m := range members {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		j.sweepMember(ctx, m, now, lastActive, stats)
	}

	stats.CompletedAt = time.Now().UTC()
	stats.Duration = stats.CompletedAt.Sub(stats.StartedAt)
	j.lastRunStats.Store(stats)

	j.logger.Info("inactivity sweep completed",
		"duration", stats.Duration,
		"checked", stats.MembersChecked,
		"inactive", stats.InactiveFound,
		"notified", stats.NotifiedOK,
		"delivery_errors", stats.DeliveryErrors,
	)

	return nil
}

// snapshotLastActive copies each member's last-active time while
// holding the store mutex, so the sweep never reads the store maps
// concurrently with a mutating command handler. Members missing from
// the result are unknown to the store or never posted.
func (j *InactivitySweepJob) snapshotLastActive(members []Member) map[tracker.MemberID]time.Time {
	j.storeMu.Lock()
	defer j.storeMu.Unlock()

	snapshot := make(map[tracker.MemberID]time.Time, len(members))
	for _, m := range members {
		rec, ok := j.store.Get(m.ID)
		if !ok || rec.NeverActive() {
			continue
		}
		snapshot[m.ID] = rec.LastActive
	}
	return snapshot
}

func (j *InactivitySweepJob) sweepMember(ctx context.Context, m Member, now time.Time, lastActive map[tracker.MemberID]time.Time, stats *SweepStats) {
	if m.IsBot {
		stats.BotsSkipped++
		return
	}

	last, ok := lastActive[m.ID]
	if !ok {
		stats.NeverActive++
		return
	}

	inactiveFor := now.Sub(last)
	if inactiveFor <= j.config.Threshold {
		return
	}
	stats.InactiveFound++

	if j.publisher != nil {
		if err := j.publisher.Publish(shared.NewMemberInactiveEvent(m.ID.String(), last, inactiveFor)); err != nil {
			j.logger.Warn("failed to publish inactivity event", "member_id", m.ID, "error", err)
		}
	}

	if j.notifier == nil {
		return
	}
	if err := j.notifier.NotifyInactive(ctx, m, last, inactiveFor); err != nil {
		stats.DeliveryErrors++
		j.logger.Error("failed to nudge inactive member",
			"member_id", m.ID,
			"chat_id", m.ChatID,
			"error", err,
		)
		return
	}
	stats.NotifiedOK++
}

// LastStats returns the statistics of the most recent run, if any.
func (j *InactivitySweepJob) LastStats() *SweepStats {
	v := j.lastRunStats.Load()
	if v == nil {
		return nil
	}
	return v.(*SweepStats)
}
