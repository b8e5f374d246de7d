package economy

import (
	"fmt"
	"math"
	"sync"
	"time"

	"CurbClicker/internal/achievement"
	"CurbClicker/internal/catalog"
	"CurbClicker/internal/clock"
	"CurbClicker/internal/formula"
	"CurbClicker/internal/income"
	"CurbClicker/internal/model"
)

// Publisher receives engine events. Publish must not block.
type Publisher interface {
	Publish(evt model.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}

// Options tunes the engine's anti-cheat limits.
type Options struct {
	ClickRateLimit int // accepted clicks per rate window
}

func DefaultOptions() Options {
	return Options{ClickRateLimit: 20}
}

// ClickResult is returned for every accepted click.
type ClickResult struct {
	Yield     int64
	LeveledUp bool
	Level     int
}

// Engine owns one player's EconomyState. Every command runs under a single lock,
// so timer callbacks and player commands never observe a partial mutation.
type Engine struct {
	mu             sync.Mutex
	cat            *catalog.Catalog
	clk            clock.Clock
	opts           Options
	pub            Publisher
	state          *model.EconomyState
	clicksInWindow int
	lastTickMs     int64
}

// NewEngine creates an engine holding a fresh default state.
func NewEngine(cat *catalog.Catalog, clk clock.Clock, opts Options, pub Publisher) *Engine {
	if pub == nil {
		pub = nopPublisher{}
	}
	if opts.ClickRateLimit <= 0 {
		opts.ClickRateLimit = DefaultOptions().ClickRateLimit
	}
	return &Engine{
		cat:        cat,
		clk:        clk,
		opts:       opts,
		pub:        pub,
		state:      DefaultState(cat),
		lastTickMs: clk.Now().UnixMilli(),
	}
}

// Catalog returns the definitions the engine prices against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() model.EconomyState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Restore replaces the state with one reconstructed from persistence.
func (e *Engine) Restore(st model.EconomyState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := st.Clone()
	Normalize(e.cat, &c)
	e.state = &c
	e.clicksInWindow = 0
	e.lastTickMs = e.clk.Now().UnixMilli()
}

// Reset discards all progress and starts over from the default state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = DefaultState(e.cat)
	e.clicksInWindow = 0
	e.lastTickMs = e.clk.Now().UnixMilli()
}

// RegisterClick credits one click unless the rate window is already full.
func (e *Engine) RegisterClick() (ClickResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clicksInWindow >= e.opts.ClickRateLimit {
		return ClickResult{}, model.ErrRateLimited
	}
	e.clicksInWindow++

	now := e.clk.Now()
	st := e.state
	yield := income.ClickYield(e.cat, st, now.UnixMilli())
	e.credit(yield)

	prevLevel := st.Level
	st.Experience = addSat(st.Experience, yield)
	for st.Experience >= formula.LevelRequirement(st.Level) {
		st.Experience -= formula.LevelRequirement(st.Level)
		st.Level++
	}
	st.ClickPower = formula.ClickPowerForLevel(st.Level)

	st.Stats.TotalClicks++
	if e.clicksInWindow > st.Stats.MaxClicksPerSecond {
		st.Stats.MaxClicksPerSecond = e.clicksInWindow
	}

	leveled := st.Level > prevLevel
	if leveled {
		e.pub.Publish(model.NewEvent(model.EventLevelUp, now, map[string]any{
			"level":      st.Level,
			"previous":   prevLevel,
			"clickPower": st.ClickPower,
		}))
	}
	e.unlockAchievements(now)

	return ClickResult{Yield: yield, LeveledUp: leveled, Level: st.Level}, nil
}

// PurchaseProducer buys one unit of a producer at its current price.
func (e *Engine) PurchaseProducer(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	def, ok := e.cat.Producer(id)
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrUnknownProducer, id)
	}
	h := e.state.Producers[id]
	if h.CurrentPrice <= 0 {
		h.CurrentPrice = def.BasePrice
	}
	if e.state.Currency < h.CurrentPrice {
		return fmt.Errorf("%w: %s costs %d, balance %d", model.ErrInsufficientFunds, id, h.CurrentPrice, e.state.Currency)
	}

	e.state.Currency -= h.CurrentPrice
	h.OwnedCount++
	h.CurrentPrice = formula.NextPurchasePrice(h.CurrentPrice, def.GrowthRate)
	e.state.Producers[id] = h
	e.state.Stats.TotalPurchases++

	e.unlockAchievements(e.clk.Now())
	return nil
}

// PurchaseUpgrade buys the next tier of an upgrade from its currency pool.
func (e *Engine) PurchaseUpgrade(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	def, ok := e.cat.Upgrade(id)
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrUnknownUpgrade, id)
	}
	h := e.state.Upgrades[id]
	if h.OwnedTier >= def.MaxTier {
		return fmt.Errorf("%w: %s tier %d", model.ErrMaxTierReached, id, h.OwnedTier)
	}
	if h.CurrentPrice <= 0 {
		h.CurrentPrice = def.BasePrice
	}

	balance := &e.state.Currency
	if def.Currency == model.CurrencyPremium {
		balance = &e.state.Premium
	}
	if *balance < h.CurrentPrice {
		return fmt.Errorf("%w: %s costs %d %s, balance %d", model.ErrInsufficientFunds, id, h.CurrentPrice, def.Currency, *balance)
	}

	*balance -= h.CurrentPrice
	h.OwnedTier++
	h.CurrentPrice = formula.NextUpgradePrice(h.CurrentPrice)
	e.state.Upgrades[id] = h
	e.state.Stats.TotalPurchases++

	e.unlockAchievements(e.clk.Now())
	return nil
}

// ActivateBonus starts a temporary bonus. It is a no-op returning false while
// another bonus is still running or when kind is unknown.
func (e *Engine) ActivateBonus(kind model.BonusKind) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clk.Now()
	if e.state.ActiveBonus.Active(now.UnixMilli()) {
		return false
	}
	return e.startBonus(kind, now)
}

// startBonus sets the active bonus, replacing any previous one. Caller holds e.mu.
func (e *Engine) startBonus(kind model.BonusKind, now time.Time) bool {
	def, ok := e.cat.Bonus(kind)
	if !ok {
		return false
	}
	expires := now.Add(def.Duration).UnixMilli()
	e.state.ActiveBonus = &model.ActiveBonus{Kind: kind, ExpiresAtEpochMs: expires}
	e.pub.Publish(model.NewEvent(model.EventBonusActivated, now, map[string]any{
		"kind":       string(kind),
		"multiplier": def.Multiplier,
		"seconds":    int64(def.Duration / time.Second),
	}))
	return true
}

// Tick advances passive time to now. Passive income is credited once per whole
// elapsed second, so repeating a tick for the same instant credits nothing.
func (e *Engine) Tick(now time.Time) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	nowMs := now.UnixMilli()
	if b := e.state.ActiveBonus; b != nil && nowMs >= b.ExpiresAtEpochMs {
		e.state.ActiveBonus = nil
		e.pub.Publish(model.NewEvent(model.EventBonusExpired, now, map[string]any{
			"kind": string(b.Kind),
		}))
	}

	elapsed := (nowMs - e.lastTickMs) / 1000
	if elapsed <= 0 {
		return 0
	}
	e.lastTickMs += elapsed * 1000

	yield := income.PassiveYieldPerSecond(e.cat, e.state, nowMs)
	credited := int64(0)
	if yield > 0 {
		if elapsed > math.MaxInt64/yield {
			credited = math.MaxInt64
		} else {
			credited = yield * elapsed
		}
		e.credit(credited)
	}
	e.state.Stats.PlayTimeSeconds += elapsed

	e.unlockAchievements(now)
	return credited
}

// ResetClickWindow opens a new rate-limit window.
func (e *Engine) ResetClickWindow() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clicksInWindow = 0
}

// GrantPremium credits premium currency bought outside the engine.
func (e *Engine) GrantPremium(amount int64) error {
	if amount <= 0 {
		return model.ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Premium = addSat(e.state.Premium, amount)
	return nil
}

// MarkPersisted records the timestamp of the last successful save.
func (e *Engine) MarkPersisted(atMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Stats.LastPersistedAtEpochMs = atMs
}

// ClickYield previews the yield of the next click.
func (e *Engine) ClickYield() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return income.ClickYield(e.cat, e.state, e.clk.Now().UnixMilli())
}

// PassiveYield previews the current passive income per second.
func (e *Engine) PassiveYield() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return income.PassiveYieldPerSecond(e.cat, e.state, e.clk.Now().UnixMilli())
}

// credit adds earned currency. Caller holds e.mu.
func (e *Engine) credit(amount int64) {
	if amount <= 0 {
		return
	}
	e.state.Currency = addSat(e.state.Currency, amount)
	e.state.TotalEarned = addSat(e.state.TotalEarned, amount)
}

// unlockAchievements applies every newly satisfied achievement. A currency
// reward can satisfy another rule, so evaluation repeats until stable.
func (e *Engine) unlockAchievements(now time.Time) {
	for {
		defs := achievement.Evaluate(e.cat, e.state)
		if len(defs) == 0 {
			return
		}
		for _, a := range defs {
			e.state.Achievements = append(e.state.Achievements, a.ID)
			switch a.Reward.Kind {
			case model.RewardCurrency:
				e.credit(formula.Floor(a.Reward.Value))
			case model.RewardBonus:
				e.startBonus(a.Reward.Bonus, now)
			}
			e.pub.Publish(model.NewEvent(model.EventAchievementUnlocked, now, map[string]any{
				"id":     a.ID,
				"name":   a.Name,
				"reward": string(a.Reward.Kind),
			}))
		}
	}
}

func addSat(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
