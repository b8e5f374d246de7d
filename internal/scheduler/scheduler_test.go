package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"CurbClicker/internal/catalog"
	"CurbClicker/internal/clock"
	"CurbClicker/internal/economy"
	"CurbClicker/internal/model"
	"CurbClicker/internal/persistence"
	"CurbClicker/internal/recorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

type captureRecorder struct {
	recorder.NoopRecorder
	mu    sync.Mutex
	saves []recorder.SaveSummary
}

func (c *captureRecorder) RecordSave(s *recorder.SaveSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saves = append(c.saves, *s)
	return nil
}

type countingStepper struct {
	mu    sync.Mutex
	steps int
}

func (c *countingStepper) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps++
}

type failingSaver struct{}

func (failingSaver) Save(context.Context, model.EconomyState) (int64, error) {
	return 0, model.ErrStorageUnavailable
}
func (failingSaver) Scope() string { return "curb_clicker_x" }

type fixture struct {
	sched *Scheduler
	eng   *economy.Engine
	gw    *persistence.Gateway
	clk   *clock.Fake
	rec   *captureRecorder
	step  *countingStepper
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat := catalog.Default()
	clk := clock.NewFake(start)
	eng := economy.NewEngine(cat, clk, economy.DefaultOptions(), nil)
	gw := persistence.NewGateway(persistence.NewMemoryStore(), cat, clk, "7", persistence.DefaultOptions())
	rec := &captureRecorder{}
	step := &countingStepper{}
	return &fixture{
		sched: NewScheduler(context.Background(), eng, gw, step, rec, clk),
		eng:   eng,
		gw:    gw,
		clk:   clk,
		rec:   rec,
		step:  step,
	}
}

func TestRegisterAll(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sched.RegisterAll(DefaultIntervals()))
	assert.Len(t, f.sched.Cron.Entries(), 4)
}

func TestRegisterAll_WithoutSpawner(t *testing.T) {
	f := newFixture(t)
	f.sched.Spawner = nil
	require.NoError(t, f.sched.RegisterAll(Intervals{}))
	assert.Len(t, f.sched.Cron.Entries(), 3)
}

func TestTickTask_ReadsLiveEngine(t *testing.T) {
	f := newFixture(t)
	st := f.eng.Snapshot()
	h := st.Producers["student"]
	h.OwnedCount = 5
	st.Producers["student"] = h
	f.eng.Restore(st)

	f.clk.Advance(3 * time.Second)
	f.sched.tickTask()
	assert.Equal(t, int64(15), f.eng.Snapshot().Currency)

	// a purchase between fires is seen by the next fire
	st = f.eng.Snapshot()
	h = st.Producers["student"]
	h.OwnedCount = 10
	st.Producers["student"] = h
	f.eng.Restore(st)

	f.clk.Advance(time.Second)
	f.sched.tickTask()
	assert.Equal(t, int64(25), f.eng.Snapshot().Currency)
}

func TestAutosave(t *testing.T) {
	f := newFixture(t)
	_, err := f.eng.RegisterClick()
	require.NoError(t, err)

	f.sched.autosaveTask()

	snap := f.eng.Snapshot()
	assert.Equal(t, start.UnixMilli(), snap.Stats.LastPersistedAtEpochMs)

	res, err := f.gw.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap, res.State)

	require.Len(t, f.rec.saves, 1)
	assert.Equal(t, "autosave", f.rec.saves[0].Trigger)
	assert.Equal(t, "curb_clicker_7", f.rec.saves[0].Scope)
	assert.Equal(t, int64(1), f.rec.saves[0].TotalClicks)
}

func TestSaveNow_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.sched.Gateway = failingSaver{}

	err := f.sched.SaveNow(context.Background(), "manual")
	assert.True(t, errors.Is(err, model.ErrStorageUnavailable))
	assert.Zero(t, f.eng.Snapshot().Stats.LastPersistedAtEpochMs)
	assert.Empty(t, f.rec.saves)
}

func TestShutdown_SavesSynchronously(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sched.RegisterAll(DefaultIntervals()))
	f.sched.Start()

	_, err := f.eng.RegisterClick()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.sched.Shutdown(ctx))

	res, err := f.gw.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.State.Stats.TotalClicks)

	f.rec.mu.Lock()
	defer f.rec.mu.Unlock()
	require.NotEmpty(t, f.rec.saves)
	assert.Equal(t, "shutdown", f.rec.saves[len(f.rec.saves)-1].Trigger)
}
