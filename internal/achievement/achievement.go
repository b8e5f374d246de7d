package achievement

import (
	"CurbClicker/internal/catalog"
	"CurbClicker/internal/model"
)

// Condition reports whether an achievement is satisfied by the state.
type Condition func(cat *catalog.Catalog, st *model.EconomyState) bool

// Rules maps achievement ids to their unlock conditions. Ids without a rule never unlock.
var Rules = map[string]Condition{
	"first_million": func(_ *catalog.Catalog, st *model.EconomyState) bool {
		return st.TotalEarned >= 1_000_000
	},
	"curb_magnate": ownsEveryClickProducer,
	"speed_clicker": func(_ *catalog.Catalog, st *model.EconomyState) bool {
		return st.Stats.MaxClicksPerSecond >= 10
	},
	"space_scale": func(_ *catalog.Catalog, st *model.EconomyState) bool {
		return st.Owned("space") > 0
	},
	"golden_touch": func(_ *catalog.Catalog, st *model.EconomyState) bool {
		return st.Stats.TotalClicks >= 1000
	},
	"city_legend": func(_ *catalog.Catalog, st *model.EconomyState) bool {
		return st.Level >= 100
	},
}

func ownsEveryClickProducer(cat *catalog.Catalog, st *model.EconomyState) bool {
	found := false
	for _, p := range cat.Producers {
		if p.ClickMultiplier <= 0 {
			continue
		}
		if st.Owned(p.ID) == 0 {
			return false
		}
		found = true
	}
	return found
}

// Evaluate returns the achievements that are satisfied but not yet unlocked,
// in catalog order.
func Evaluate(cat *catalog.Catalog, st *model.EconomyState) []model.AchievementDef {
	var unlocked []model.AchievementDef
	for _, a := range cat.Achievements {
		if st.HasAchievement(a.ID) {
			continue
		}
		cond, ok := Rules[a.ID]
		if ok && cond(cat, st) {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}
