package income

import (
	"testing"

	"CurbClicker/internal/catalog"
	"CurbClicker/internal/model"

	"github.com/stretchr/testify/assert"
)

const now = int64(1_700_000_000_000)

func freshState() *model.EconomyState {
	return &model.EconomyState{
		Level:      1,
		ClickPower: 1,
		Producers:  map[string]model.ProducerHolding{},
		Upgrades:   map[string]model.UpgradeHolding{},
	}
}

func withBonus(st *model.EconomyState, kind model.BonusKind) {
	st.ActiveBonus = &model.ActiveBonus{Kind: kind, ExpiresAtEpochMs: now + 5000}
}

func TestClickYield_NoProducersNoBonus(t *testing.T) {
	assert.Equal(t, int64(1), ClickYield(catalog.Default(), freshState(), now))
}

func TestClickYield_StrongestProducer(t *testing.T) {
	cat := catalog.Default()
	st := freshState()
	st.ClickPower = 40
	st.Producers["concrete"] = model.ProducerHolding{OwnedCount: 30}
	st.Producers["granite"] = model.ProducerHolding{OwnedCount: 1}
	st.Producers["megacorp"] = model.ProducerHolding{OwnedCount: 3}

	p, ok := StrongestProducer(cat, st)
	assert.True(t, ok)
	assert.Equal(t, "granite", p.ID)
	assert.Equal(t, int64(200), ClickYield(cat, st, now))
}

func TestStrongestProducer_TieBreaksByDeclarationOrder(t *testing.T) {
	cat := &catalog.Catalog{Producers: []model.ProducerDef{
		{ID: "first", BasePrice: 1, ClickMultiplier: 3},
		{ID: "second", BasePrice: 1, ClickMultiplier: 3},
	}}
	st := freshState()
	st.Producers["second"] = model.ProducerHolding{OwnedCount: 5}
	st.Producers["first"] = model.ProducerHolding{OwnedCount: 1}

	p, ok := StrongestProducer(cat, st)
	assert.True(t, ok)
	assert.Equal(t, "first", p.ID)
}

func TestBonusMultipliers(t *testing.T) {
	cat := catalog.Default()
	tests := []struct {
		kind    model.BonusKind
		click   float64
		passive float64
	}{
		{model.BonusMegaClick, 10, 1},
		{model.BonusDouble, 2, 2},
		{model.BonusGoldenHour, 5, 5},
	}
	for _, tt := range tests {
		st := freshState()
		withBonus(st, tt.kind)
		assert.Equal(t, tt.click, BonusMultiplier(cat, st, now), tt.kind)
		assert.Equal(t, tt.passive, PassiveBonusMultiplier(cat, st, now), tt.kind)
	}
}

func TestBonusMultiplier_ExpiredHasNoEffect(t *testing.T) {
	cat := catalog.Default()
	st := freshState()
	withBonus(st, model.BonusMegaClick)
	assert.Equal(t, 1.0, BonusMultiplier(cat, st, now+5000))
}

func TestPassiveYield_MegaClickIgnored(t *testing.T) {
	cat := catalog.Default()
	st := freshState()
	st.Producers["foreman"] = model.ProducerHolding{OwnedCount: 2}
	assert.Equal(t, int64(20), PassiveYieldPerSecond(cat, st, now))

	withBonus(st, model.BonusMegaClick)
	assert.Equal(t, int64(20), PassiveYieldPerSecond(cat, st, now))

	withBonus(st, model.BonusDouble)
	assert.Equal(t, int64(40), PassiveYieldPerSecond(cat, st, now))
}

func TestAdditiveUpgradesApplyBeforeMultipliers(t *testing.T) {
	cat := catalog.Default()
	st := freshState()
	st.Upgrades["better-bribes"] = model.UpgradeHolding{OwnedTier: 2}     // +4 per click
	st.Upgrades["corrupt-network"] = model.UpgradeHolding{OwnedTier: 3}   // +3 per second
	st.Upgrades["offshore-accounts"] = model.UpgradeHolding{OwnedTier: 1} // x2
	withBonus(st, model.BonusDouble)

	// (1 + 4) * 2 (bonus) * 2 (offshore)
	assert.Equal(t, int64(20), ClickYield(cat, st, now))
	// (0 + 3) * 2 (bonus) * 2 (offshore)
	assert.Equal(t, int64(12), PassiveYieldPerSecond(cat, st, now))
}

func TestGlobalMultiplier_ComposesMultiplicatively(t *testing.T) {
	cat := catalog.Default()
	st := freshState()
	st.Upgrades["offshore-accounts"] = model.UpgradeHolding{OwnedTier: 2}
	st.Upgrades["corruption-empire"] = model.UpgradeHolding{OwnedTier: 1}
	st.Achievements = []string{"city_legend"}

	// 2^2 * 10 * 2
	assert.Equal(t, 80.0, GlobalMultiplier(cat, st))
}
