// Package shared contains common domain types and events used across all
// domain packages.
package shared

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types - each represents something significant that happened
// in the activity engine.
const (
	// Activity events
	EventSolveRecorded EventType = "activity.solve_recorded"
	EventPuzzleSkipped EventType = "activity.puzzle_skipped"

	// Goal events
	EventGoalSet EventType = "goal.set"

	// Admin events
	EventSolvesAdjusted EventType = "admin.solves_adjusted"

	// System events
	EventMemberInactive EventType = "system.member_inactive"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// EventID returns the unique identifier of the event instance.
	EventID() string

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
}

// EventPublisher publishes domain events to interested subscribers.
type EventPublisher interface {
	Publish(event Event) error
}

// EventHandler reacts to a published event.
type EventHandler func(event Event) error

// EventBus routes published events to subscribed handlers.
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler for one event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for every event.
	SubscribeAll(handler EventHandler) error

	// Close stops delivery and releases resources.
	Close() error
}

// BaseEvent carries the fields common to all events.
type BaseEvent struct {
	ID   string
	Type EventType
	At   time.Time
}

// NewBaseEvent creates the common event envelope.
func NewBaseEvent(t EventType) BaseEvent {
	return BaseEvent{
		ID:   uuid.NewString(),
		Type: t,
		At:   time.Now().UTC(),
	}
}

func (e BaseEvent) EventType() EventType  { return e.Type }
func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// SolveRecordedEvent is emitted when a solve is recorded for a member.
type SolveRecordedEvent struct {
	BaseEvent

	// MemberID is the member the solve was recorded for.
	MemberID string

	// Day is the UTC day key the solve was counted against.
	Day string

	// TotalSolved is the member's counter after the increment.
	TotalSolved int

	// Source describes the trigger ("code_block" or "daily_puzzle").
	Source string
}

// NewSolveRecordedEvent creates a SolveRecordedEvent.
func NewSolveRecordedEvent(memberID, day string, totalSolved int, source string) SolveRecordedEvent {
	return SolveRecordedEvent{
		BaseEvent:   NewBaseEvent(EventSolveRecorded),
		MemberID:    memberID,
		Day:         day,
		TotalSolved: totalSolved,
		Source:      source,
	}
}

// PuzzleSkippedEvent is emitted when the daily-puzzle guard suppressed an
// increment because today was already active.
type PuzzleSkippedEvent struct {
	BaseEvent

	MemberID string
	Day      string
}

// NewPuzzleSkippedEvent creates a PuzzleSkippedEvent.
func NewPuzzleSkippedEvent(memberID, day string) PuzzleSkippedEvent {
	return PuzzleSkippedEvent{
		BaseEvent: NewBaseEvent(EventPuzzleSkipped),
		MemberID:  memberID,
		Day:       day,
	}
}

// GoalSetEvent is emitted when a member sets or clears their goal.
type GoalSetEvent struct {
	BaseEvent

	MemberID string
	Goal     int
}

// NewGoalSetEvent creates a GoalSetEvent.
func NewGoalSetEvent(memberID string, goal int) GoalSetEvent {
	return GoalSetEvent{
		BaseEvent: NewBaseEvent(EventGoalSet),
		MemberID:  memberID,
		Goal:      goal,
	}
}

// SolvesAdjustedEvent is emitted when an admin adjusts a member's counter.
type SolvesAdjustedEvent struct {
	BaseEvent

	MemberID string
	Delta    int
	NewTotal int
	AdminID  string
}

// NewSolvesAdjustedEvent creates a SolvesAdjustedEvent.
func NewSolvesAdjustedEvent(memberID string, delta, newTotal int, adminID string) SolvesAdjustedEvent {
	return SolvesAdjustedEvent{
		BaseEvent: NewBaseEvent(EventSolvesAdjusted),
		MemberID:  memberID,
		Delta:     delta,
		NewTotal:  newTotal,
		AdminID:   adminID,
	}
}

// MemberInactiveEvent is emitted by the inactivity sweep for each member
// found past the threshold.
type MemberInactiveEvent struct {
	BaseEvent

	MemberID   string
	LastActive time.Time
	Inactive   time.Duration
}

// NewMemberInactiveEvent creates a MemberInactiveEvent.
func NewMemberInactiveEvent(memberID string, lastActive time.Time, inactive time.Duration) MemberInactiveEvent {
	return MemberInactiveEvent{
		BaseEvent:  NewBaseEvent(EventMemberInactive),
		MemberID:   memberID,
		LastActive: lastActive,
		Inactive:   inactive,
	}
}
