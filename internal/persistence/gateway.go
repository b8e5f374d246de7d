package persistence

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"CurbClicker/internal/catalog"
	"CurbClicker/internal/clock"
	"CurbClicker/internal/economy"
	"CurbClicker/internal/income"
	"CurbClicker/internal/model"
)

const scopePrefix = "curb_clicker_"

// ScopeKey returns the storage key for a player. An empty id maps to the guest scope.
func ScopeKey(playerID string) string {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return scopePrefix + "guest"
	}
	var b strings.Builder
	for _, r := range playerID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return scopePrefix + b.String()
}

// Options are the anti-cheat and offline limits applied on load.
type Options struct {
	OfflineCap  time.Duration
	MaxEarnRate float64 // currency per second of wall time since the save
}

func DefaultOptions() Options {
	return Options{OfflineCap: time.Hour, MaxEarnRate: 1_000_000}
}

// LoadResult is a validated state with offline earnings already credited.
type LoadResult struct {
	State          model.EconomyState
	OfflineEarned  int64
	OfflineSeconds int64
}

// Gateway serializes one player's state to a Store.
type Gateway struct {
	store Store
	cat   *catalog.Catalog
	clk   clock.Clock
	scope string
	opts  Options
}

func NewGateway(store Store, cat *catalog.Catalog, clk clock.Clock, playerID string, opts Options) *Gateway {
	if opts.OfflineCap <= 0 {
		opts.OfflineCap = DefaultOptions().OfflineCap
	}
	if opts.MaxEarnRate <= 0 {
		opts.MaxEarnRate = DefaultOptions().MaxEarnRate
	}
	return &Gateway{
		store: store,
		cat:   cat,
		clk:   clk,
		scope: ScopeKey(playerID),
		opts:  opts,
	}
}

// Scope returns the key this gateway reads and writes.
func (g *Gateway) Scope() string {
	return g.scope
}

// Save writes st under the scope key and returns the snapshot timestamp in ms.
func (g *Gateway) Save(ctx context.Context, st model.EconomyState) (int64, error) {
	ts := g.clk.Now().UnixMilli()
	st.Stats.LastPersistedAtEpochMs = ts

	blob, err := encode(fromState(st, ts))
	if err != nil {
		return 0, err
	}
	if err := g.store.Put(ctx, g.scope, blob); err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}
	return ts, nil
}

// Load reads, validates and catches up the saved state.
func (g *Gateway) Load(ctx context.Context) (*LoadResult, error) {
	blob, err := g.store.Get(ctx, g.scope)
	if errors.Is(err, ErrNotFound) {
		return nil, model.ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}

	snap, err := decode(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrCorruptSave, err)
	}

	nowMs := g.clk.Now().UnixMilli()
	if err := g.validate(snap, nowMs); err != nil {
		return nil, err
	}

	st := snap.state()
	economy.Normalize(g.cat, &st)

	elapsed := time.Duration(nowMs-snap.Timestamp) * time.Millisecond
	if elapsed > g.opts.OfflineCap {
		elapsed = g.opts.OfflineCap
	}
	seconds := int64(elapsed / time.Second)

	var earned int64
	if seconds > 0 {
		rate := income.PassiveYieldPerSecond(g.cat, &st, nowMs)
		earned = mulSat(rate, seconds)
		st.Currency = addSat(st.Currency, earned)
		st.TotalEarned = addSat(st.TotalEarned, earned)
	}

	if earned > 0 {
		log.Printf("[INFO] offline accrual for %s: %d over %ds", g.scope, earned, seconds)
	}
	return &LoadResult{State: st, OfflineEarned: earned, OfflineSeconds: seconds}, nil
}

func (g *Gateway) validate(s snapshot, nowMs int64) error {
	if s.Currency < 0 || s.Level < 1 {
		return fmt.Errorf("%w: currency=%d level=%d", model.ErrCorruptSave, s.Currency, s.Level)
	}
	if s.Checksum == "" || s.Timestamp <= 0 {
		return fmt.Errorf("%w: missing checksum or timestamp", model.ErrCorruptSave)
	}
	if want := Checksum(s.Currency, s.Level, s.TotalEarned, s.Stats.TotalClicks); s.Checksum != want {
		return fmt.Errorf("%w: checksum mismatch", model.ErrCorruptSave)
	}
	if s.Timestamp > nowMs {
		return fmt.Errorf("%w: timestamp %d is in the future", model.ErrImplausibleProgress, s.Timestamp)
	}
	elapsedSec := float64(nowMs-s.Timestamp) / 1000
	if elapsedSec < 1 {
		elapsedSec = 1
	}
	if float64(s.TotalEarned)/elapsedSec > g.opts.MaxEarnRate {
		return fmt.Errorf("%w: %d earned in %.0fs", model.ErrImplausibleProgress, s.TotalEarned, elapsedSec)
	}
	return nil
}

// Clear removes the persisted snapshot for this scope.
func (g *Gateway) Clear(ctx context.Context) error {
	if err := g.store.Delete(ctx, g.scope); err != nil {
		return fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}
	return nil
}

func addSat(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func mulSat(a, b int64) int64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}
