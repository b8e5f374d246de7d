package model

import (
	"time"

	"github.com/google/uuid"
)

// EventKind indicates what happened inside the engine.
type EventKind string

const (
	EventLevelUp             EventKind = "level_up"
	EventAchievementUnlocked EventKind = "achievement_unlocked"
	EventBonusActivated      EventKind = "bonus_activated"
	EventBonusOffered        EventKind = "bonus_offered"
	EventBonusExpired        EventKind = "bonus_expired"
	EventOfflineEarnings     EventKind = "offline_earnings"
)

// Event is a structured notification emitted by the engine. Consumers decide
// whether and how to surface it.
type Event struct {
	ID      string         `json:"id"`
	Kind    EventKind      `json:"kind"`
	Payload map[string]any `json:"payload"`
	At      time.Time      `json:"at"`
}

// NewEvent builds an event with a fresh id.
func NewEvent(kind EventKind, at time.Time, payload map[string]any) Event {
	return Event{
		ID:      uuid.NewString(),
		Kind:    kind,
		Payload: payload,
		At:      at,
	}
}
