// Package income derives click and passive yields from an EconomyState.
// All functions are pure; callers pass the evaluation time explicitly.
package income

import (
	"math"

	"CurbClicker/internal/catalog"
	"CurbClicker/internal/formula"
	"CurbClicker/internal/model"
)

// BonusMultiplier returns the active bonus multiplier for clicks at nowMs, 1 when none applies.
func BonusMultiplier(cat *catalog.Catalog, st *model.EconomyState, nowMs int64) float64 {
	def, ok := activeBonus(cat, st, nowMs)
	if !ok {
		return 1
	}
	return def.Multiplier
}

// PassiveBonusMultiplier is BonusMultiplier restricted to bonuses that affect passive income.
func PassiveBonusMultiplier(cat *catalog.Catalog, st *model.EconomyState, nowMs int64) float64 {
	def, ok := activeBonus(cat, st, nowMs)
	if !ok || !def.Passive {
		return 1
	}
	return def.Multiplier
}

func activeBonus(cat *catalog.Catalog, st *model.EconomyState, nowMs int64) (model.BonusDef, bool) {
	if !st.ActiveBonus.Active(nowMs) {
		return model.BonusDef{}, false
	}
	return cat.Bonus(st.ActiveBonus.Kind)
}

// StrongestProducer returns the owned producer with the highest click multiplier.
// Equal multipliers resolve to the earliest declared producer.
func StrongestProducer(cat *catalog.Catalog, st *model.EconomyState) (model.ProducerDef, bool) {
	var best model.ProducerDef
	found := false
	for _, p := range cat.Producers {
		if p.ClickMultiplier <= 0 || st.Owned(p.ID) <= 0 {
			continue
		}
		if !found || p.ClickMultiplier > best.ClickMultiplier {
			best = p
			found = true
		}
	}
	return best, found
}

// GlobalMultiplier is the product of every permanent multiplier: multiplicative
// upgrade tiers and unlocked achievement rewards.
func GlobalMultiplier(cat *catalog.Catalog, st *model.EconomyState) float64 {
	m := 1.0
	for _, u := range cat.Upgrades {
		if u.Effect != model.EffectMultiplier {
			continue
		}
		if tier := st.Upgrades[u.ID].OwnedTier; tier > 0 {
			m *= math.Pow(u.Value, float64(tier))
		}
	}
	for _, a := range cat.Achievements {
		if a.Reward.Kind == model.RewardMultiplier && st.HasAchievement(a.ID) {
			m *= a.Reward.Value
		}
	}
	return m
}

// additive sums the flat bonus of every owned tier of upgrades with the given effect.
func additive(cat *catalog.Catalog, st *model.EconomyState, effect model.EffectKind) float64 {
	var sum float64
	for _, u := range cat.Upgrades {
		if u.Effect == effect {
			sum += u.Value * float64(st.Upgrades[u.ID].OwnedTier)
		}
	}
	return sum
}

// ClickYield is the amount one accepted click earns at nowMs.
func ClickYield(cat *catalog.Catalog, st *model.EconomyState, nowMs int64) int64 {
	base := float64(st.ClickPower) + additive(cat, st, model.EffectClickPower)
	producer := 1.0
	if p, ok := StrongestProducer(cat, st); ok {
		producer = p.ClickMultiplier
	}
	return formula.Floor(base * producer * BonusMultiplier(cat, st, nowMs) * GlobalMultiplier(cat, st))
}

// PassiveYieldPerSecond is the passive income credited for one second at nowMs.
// MegaClick-style bonuses never apply here.
func PassiveYieldPerSecond(cat *catalog.Catalog, st *model.EconomyState, nowMs int64) int64 {
	var base float64
	for _, p := range cat.Producers {
		base += float64(st.Owned(p.ID) * p.IncomePerUnit)
	}
	base += additive(cat, st, model.EffectPassiveIncome)
	if base == 0 {
		return 0
	}
	return formula.Floor(base * PassiveBonusMultiplier(cat, st, nowMs) * GlobalMultiplier(cat, st))
}
