package economy

import (
	"CurbClicker/internal/catalog"
	"CurbClicker/internal/formula"
	"CurbClicker/internal/model"
)

// DefaultState returns the first-run state for the given catalog.
func DefaultState(cat *catalog.Catalog) *model.EconomyState {
	st := &model.EconomyState{
		Level:        1,
		ClickPower:   formula.ClickPowerForLevel(1),
		Producers:    make(map[string]model.ProducerHolding, len(cat.Producers)),
		Upgrades:     make(map[string]model.UpgradeHolding, len(cat.Upgrades)),
		Achievements: []string{},
	}
	Normalize(cat, st)
	return st
}

// Normalize fills catalog entries missing from st and recomputes derived fields.
// A state saved under an older catalog gains the new producers and upgrades at base price.
func Normalize(cat *catalog.Catalog, st *model.EconomyState) {
	if st.Producers == nil {
		st.Producers = make(map[string]model.ProducerHolding, len(cat.Producers))
	}
	if st.Upgrades == nil {
		st.Upgrades = make(map[string]model.UpgradeHolding, len(cat.Upgrades))
	}
	if st.Achievements == nil {
		st.Achievements = []string{}
	}
	for _, p := range cat.Producers {
		h := st.Producers[p.ID]
		if h.CurrentPrice <= 0 {
			h.CurrentPrice = p.BasePrice
		}
		st.Producers[p.ID] = h
	}
	for _, u := range cat.Upgrades {
		h := st.Upgrades[u.ID]
		if h.CurrentPrice <= 0 {
			h.CurrentPrice = u.BasePrice
		}
		if h.OwnedTier > u.MaxTier {
			h.OwnedTier = u.MaxTier
		}
		st.Upgrades[u.ID] = h
	}
	if st.Level < 1 {
		st.Level = 1
	}
	st.ClickPower = formula.ClickPowerForLevel(st.Level)
}
