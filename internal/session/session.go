// Package session wires one player's engine, persistence, bonus spawner and
// timers into a unit with a load/run/teardown lifecycle.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"CurbClicker/internal/catalog"
	"CurbClicker/internal/clock"
	"CurbClicker/internal/economy"
	"CurbClicker/internal/model"
	"CurbClicker/internal/persistence"
	"CurbClicker/internal/recorder"
	"CurbClicker/internal/scheduler"
	"CurbClicker/internal/spawner"
)

// Deps are the collaborators a session is built from. Publisher and Recorder may be nil.
type Deps struct {
	Catalog   *catalog.Catalog
	Store     persistence.Store
	Clock     clock.Clock
	Publisher economy.Publisher
	Recorder  recorder.Recorder
	Rand      *rand.Rand
}

type Options struct {
	PlayerID        string
	Engine          economy.Options
	Persistence     persistence.Options
	Spawner         spawner.Options
	SpawnerDisabled bool
	Intervals       scheduler.Intervals
}

type Session struct {
	Engine    *economy.Engine
	Gateway   *persistence.Gateway
	Spawner   *spawner.Spawner
	Scheduler *scheduler.Scheduler

	pub economy.Publisher
	clk clock.Clock
	iv  scheduler.Intervals
}

func New(ctx context.Context, deps Deps, opts Options) *Session {
	pub := deps.Publisher
	if pub == nil {
		pub = discard{}
	}
	eng := economy.NewEngine(deps.Catalog, deps.Clock, opts.Engine, pub)
	gw := persistence.NewGateway(deps.Store, deps.Catalog, deps.Clock, opts.PlayerID, opts.Persistence)

	s := &Session{
		Engine:  eng,
		Gateway: gw,
		pub:     pub,
		clk:     deps.Clock,
		iv:      opts.Intervals,
	}
	var stepper scheduler.Stepper
	if !opts.SpawnerDisabled {
		s.Spawner = spawner.New(deps.Catalog, eng, pub, deps.Clock, opts.Spawner, deps.Rand)
		stepper = s.Spawner
	}
	s.Scheduler = scheduler.NewScheduler(ctx, eng, gw, stepper, deps.Recorder, deps.Clock)
	return s
}

// Open restores the saved state. A missing or rejected save leaves the engine
// on a fresh default state; only the outcome is logged.
func (s *Session) Open(ctx context.Context) *persistence.LoadResult {
	res, err := s.Gateway.Load(ctx)
	switch {
	case errors.Is(err, model.ErrNoSave):
		log.Printf("[INFO] no save for %s, starting fresh", s.Gateway.Scope())
		return nil
	case err != nil:
		log.Printf("[WARN] discarding save for %s: %v", s.Gateway.Scope(), err)
		return nil
	}

	s.Engine.Restore(res.State)
	log.Printf("[INFO] restored %s: level %d, currency %d", s.Gateway.Scope(), res.State.Level, res.State.Currency)
	if res.OfflineEarned > 0 {
		s.pub.Publish(model.NewEvent(model.EventOfflineEarnings, s.clk.Now(), map[string]any{
			"earned":  res.OfflineEarned,
			"seconds": res.OfflineSeconds,
		}))
	}
	return res
}

// Start registers and starts the periodic jobs.
func (s *Session) Start() error {
	if err := s.Scheduler.RegisterAll(s.iv); err != nil {
		return fmt.Errorf("register jobs: %w", err)
	}
	s.Scheduler.Start()
	return nil
}

// Close stops the jobs and writes a final save.
func (s *Session) Close(ctx context.Context) error {
	return s.Scheduler.Shutdown(ctx)
}

// ResetProgress wipes the player's progress in memory and in storage.
func (s *Session) ResetProgress(ctx context.Context) error {
	return s.Scheduler.WithSaveLock(func() error {
		s.Engine.Reset()
		if err := s.Gateway.Clear(ctx); err != nil {
			return err
		}
		log.Printf("[INFO] progress reset for %s", s.Gateway.Scope())
		return nil
	})
}

// ClaimBonus takes the currently offered bonus, if any.
func (s *Session) ClaimBonus() (model.BonusKind, bool) {
	if s.Spawner == nil {
		return "", false
	}
	return s.Spawner.Claim()
}

type discard struct{}

func (discard) Publish(model.Event) {}
