package recorder

import (
	"time"

	"CurbClicker/internal/model"
)

// SaveSummary is one successful write of a player's snapshot.
type SaveSummary struct {
	Scope       string
	Trigger     string // "autosave", "shutdown", "manual"
	Currency    int64
	TotalEarned int64
	Level       int
	TotalClicks int64
	At          time.Time
}

// Recorder keeps an append-only history of economy events and saves.
type Recorder interface {
	RecordEvent(evt model.Event) error
	RecordSave(s *SaveSummary) error
	RecentSaves(scope string, limit int) ([]SaveSummary, error)
	Close() error
}
