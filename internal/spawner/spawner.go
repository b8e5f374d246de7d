// Package spawner offers random timed bonuses to the player.
package spawner

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"CurbClicker/internal/catalog"
	"CurbClicker/internal/clock"
	"CurbClicker/internal/model"
)

// Activator starts a bonus. Implemented by economy.Engine.
type Activator interface {
	ActivateBonus(kind model.BonusKind) bool
}

// Publisher receives bonus_offered events.
type Publisher interface {
	Publish(evt model.Event)
}

type Phase int

const (
	Idle Phase = iota
	Available
)

func (p Phase) String() string {
	if p == Available {
		return "available"
	}
	return "idle"
}

type Options struct {
	InitialDelay time.Duration
	MinDelay     time.Duration
	MaxDelay     time.Duration
	OfferTimeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		InitialDelay: 120 * time.Second,
		MinDelay:     120 * time.Second,
		MaxDelay:     300 * time.Second,
		OfferTimeout: 10 * time.Second,
	}
}

// Status is a read-only view of the spawner.
type Status struct {
	Phase     Phase
	Kind      model.BonusKind // set only while Available
	Remaining int             // seconds until spawn (Idle) or expiry (Available)
}

// Spawner is a two-state machine advanced once per second by Step.
type Spawner struct {
	mu        sync.Mutex
	kinds     []model.BonusKind
	act       Activator
	pub       Publisher
	clk       clock.Clock
	rng       *rand.Rand
	opts      Options
	phase     Phase
	remaining int
	offered   model.BonusKind
}

// New returns a spawner in Idle with the initial delay. A nil rng is seeded from the clock.
func New(cat *catalog.Catalog, act Activator, pub Publisher, clk clock.Clock, opts Options, rng *rand.Rand) *Spawner {
	def := DefaultOptions()
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = def.InitialDelay
	}
	if opts.MinDelay <= 0 {
		opts.MinDelay = def.MinDelay
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = opts.MinDelay
	}
	if opts.OfferTimeout <= 0 {
		opts.OfferTimeout = def.OfferTimeout
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(clk.Now().UnixNano()))
	}
	return &Spawner{
		kinds:     cat.SpawnableBonuses(),
		act:       act,
		pub:       pub,
		clk:       clk,
		rng:       rng,
		opts:      opts,
		phase:     Idle,
		remaining: seconds(opts.InitialDelay),
	}
}

// Step advances the machine by one second.
func (s *Spawner) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remaining--
	if s.remaining > 0 {
		return
	}

	switch s.phase {
	case Idle:
		if len(s.kinds) == 0 {
			s.idle()
			return
		}
		s.offered = s.kinds[s.rng.Intn(len(s.kinds))]
		s.phase = Available
		s.remaining = seconds(s.opts.OfferTimeout)
		if s.pub != nil {
			s.pub.Publish(model.NewEvent(model.EventBonusOffered, s.clk.Now(), map[string]any{
				"kind":    string(s.offered),
				"seconds": s.remaining,
			}))
		}
	case Available:
		log.Printf("[INFO] bonus offer %s expired unclaimed", s.offered)
		s.idle()
	}
}

// Claim activates the offered bonus. The offer is consumed either way; the
// returned bool reports whether the engine accepted it.
func (s *Spawner) Claim() (model.BonusKind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Available {
		return "", false
	}
	kind := s.offered
	s.idle()
	return kind, s.act.ActivateBonus(kind)
}

func (s *Spawner) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{Phase: s.phase, Remaining: s.remaining}
	if s.phase == Available {
		st.Kind = s.offered
	}
	return st
}

func (s *Spawner) idle() {
	s.phase = Idle
	s.offered = ""
	lo, hi := seconds(s.opts.MinDelay), seconds(s.opts.MaxDelay)
	s.remaining = lo + s.rng.Intn(hi-lo+1)
}

func seconds(d time.Duration) int {
	n := int(d / time.Second)
	if n < 1 {
		n = 1
	}
	return n
}
