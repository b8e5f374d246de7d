package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"CurbClicker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_Events(t *testing.T) {
	r := openTestRecorder(t)
	at := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

	lvl := model.NewEvent(model.EventLevelUp, at, map[string]any{"level": 2})
	require.NoError(t, r.RecordEvent(lvl))
	// same event delivered twice is stored once
	require.NoError(t, r.Deliver(context.Background(), lvl))
	require.NoError(t, r.RecordEvent(model.NewEvent(model.EventBonusOffered, at, map[string]any{"kind": "double"})))

	n, err := r.CountEvents(model.EventLevelUp)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.CountEvents(model.EventAchievementUnlocked)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLiteRecorder_Saves(t *testing.T) {
	r := openTestRecorder(t)
	base := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.RecordSave(&SaveSummary{
			Scope:       "curb_clicker_1",
			Trigger:     "autosave",
			Currency:    int64(100 * (i + 1)),
			TotalEarned: int64(200 * (i + 1)),
			Level:       1,
			TotalClicks: int64(i),
			At:          base.Add(time.Duration(i) * 10 * time.Second),
		}))
	}
	require.NoError(t, r.RecordSave(&SaveSummary{Scope: "curb_clicker_2", Trigger: "shutdown", Level: 1, At: base}))

	saves, err := r.RecentSaves("curb_clicker_1", 2)
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, int64(300), saves[0].Currency)
	assert.Equal(t, int64(200), saves[1].Currency)
	assert.Equal(t, base.Add(20*time.Second).UnixMilli(), saves[0].At.UnixMilli())

	saves, err = r.RecentSaves("curb_clicker_2", 10)
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, "shutdown", saves[0].Trigger)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordEvent(model.Event{}))
	assert.NoError(t, r.RecordSave(&SaveSummary{}))
	saves, err := r.RecentSaves("x", 1)
	assert.NoError(t, err)
	assert.Empty(t, saves)
	assert.NoError(t, r.Close())
}
