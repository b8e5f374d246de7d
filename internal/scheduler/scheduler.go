package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"CurbClicker/internal/clock"
	"CurbClicker/internal/economy"
	"CurbClicker/internal/model"
	"CurbClicker/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Saver persists a state snapshot. Implemented by persistence.Gateway.
type Saver interface {
	Save(ctx context.Context, st model.EconomyState) (int64, error)
	Scope() string
}

// Stepper is advanced once per spawner interval. Implemented by spawner.Spawner.
type Stepper interface {
	Step()
}

// Intervals configures how often each job fires.
type Intervals struct {
	Tick        time.Duration
	ClickWindow time.Duration
	Spawner     time.Duration
	Autosave    time.Duration
}

func DefaultIntervals() Intervals {
	return Intervals{
		Tick:        time.Second,
		ClickWindow: time.Second,
		Spawner:     time.Second,
		Autosave:    10 * time.Second,
	}
}

// Scheduler drives the engine's periodic work. Every job reads the live engine
// when it fires.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *economy.Engine
	Gateway  Saver
	Spawner  Stepper
	Recorder recorder.Recorder
	Clock    clock.Clock
	Ctx      context.Context

	saveMu sync.Mutex
}

// NewScheduler creates a new Scheduler. sp may be nil when bonuses are disabled.
func NewScheduler(ctx context.Context, eng *economy.Engine, gw Saver, sp Stepper, rec recorder.Recorder, clk clock.Clock) *Scheduler {
	logger := cron.PrintfLogger(log.Default())
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		Engine:   eng,
		Gateway:  gw,
		Spawner:  sp,
		Recorder: rec,
		Clock:    clk,
		Ctx:      ctx,
	}
}

// RegisterAll registers the tick, click window, spawner and autosave jobs.
func (s *Scheduler) RegisterAll(iv Intervals) error {
	def := DefaultIntervals()
	if iv.Tick <= 0 {
		iv.Tick = def.Tick
	}
	if iv.ClickWindow <= 0 {
		iv.ClickWindow = def.ClickWindow
	}
	if iv.Spawner <= 0 {
		iv.Spawner = def.Spawner
	}
	if iv.Autosave <= 0 {
		iv.Autosave = def.Autosave
	}

	if _, err := s.Cron.AddFunc(every(iv.Tick), s.tickTask); err != nil {
		return fmt.Errorf("register tick task: %w", err)
	}
	if _, err := s.Cron.AddFunc(every(iv.ClickWindow), s.Engine.ResetClickWindow); err != nil {
		return fmt.Errorf("register click window task: %w", err)
	}
	if s.Spawner != nil {
		if _, err := s.Cron.AddFunc(every(iv.Spawner), s.Spawner.Step); err != nil {
			return fmt.Errorf("register spawner task: %w", err)
		}
	}
	if _, err := s.Cron.AddFunc(every(iv.Autosave), s.autosaveTask); err != nil {
		return fmt.Errorf("register autosave task: %w", err)
	}
	return nil
}

func every(d time.Duration) string {
	return "@every " + d.String()
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Shutdown stops the timers, waits for running jobs and writes a final save.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	stopped := s.Cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		log.Println("[WARN] timed out waiting for running jobs")
	}
	log.Println("[INFO] scheduler stopped")
	return s.SaveNow(ctx, "shutdown")
}

// SaveNow persists the current state immediately.
func (s *Scheduler) SaveNow(ctx context.Context, trigger string) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	st := s.Engine.Snapshot()
	ts, err := s.Gateway.Save(ctx, st)
	if err != nil {
		log.Printf("[WARN] %s save failed: %v", trigger, err)
		return err
	}
	s.Engine.MarkPersisted(ts)

	if err := s.Recorder.RecordSave(&recorder.SaveSummary{
		Scope:       s.Gateway.Scope(),
		Trigger:     trigger,
		Currency:    st.Currency,
		TotalEarned: st.TotalEarned,
		Level:       st.Level,
		TotalClicks: st.Stats.TotalClicks,
		At:          time.UnixMilli(ts),
	}); err != nil {
		log.Printf("[ERROR] record save: %v", err)
	}
	return nil
}

// WithSaveLock runs fn while no save can be in flight.
func (s *Scheduler) WithSaveLock(fn func() error) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return fn()
}

func (s *Scheduler) tickTask() {
	s.Engine.Tick(s.Clock.Now())
}

func (s *Scheduler) autosaveTask() {
	// failures are retried on the next interval
	_ = s.SaveNow(s.Ctx, "autosave")
}
