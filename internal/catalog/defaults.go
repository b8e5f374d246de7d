package catalog

import (
	"time"

	"CurbClicker/internal/model"
)

// Default returns the stock game tables.
func Default() *Catalog {
	return &Catalog{
		Producers: []model.ProducerDef{
			// Curbs multiply every click.
			{ID: "concrete", Name: "Concrete curb", BasePrice: 100, GrowthRate: 0.10, ClickMultiplier: 1},
			{ID: "plastic", Name: "Plastic curb", BasePrice: 500, GrowthRate: 0.15, ClickMultiplier: 2},
			{ID: "granite", Name: "Granite curb", BasePrice: 2500, GrowthRate: 0.20, ClickMultiplier: 5},
			{ID: "marble", Name: "Marble curb", BasePrice: 10000, GrowthRate: 0.25, ClickMultiplier: 10},
			{ID: "led", Name: "LED curb", BasePrice: 50000, GrowthRate: 0.30, ClickMultiplier: 25},
			{ID: "smart", Name: "Smart curb", BasePrice: 250000, GrowthRate: 0.35, ClickMultiplier: 50},
			{ID: "gold", Name: "Golden curb", BasePrice: 1000000, GrowthRate: 0.40, ClickMultiplier: 100},
			{ID: "space", Name: "Space curb", BasePrice: 10000000, GrowthRate: 0.50, ClickMultiplier: 500},
			// Crews earn passively.
			{ID: "student", Name: "Intern", BasePrice: 1000, GrowthRate: 0.5, IncomePerUnit: 1},
			{ID: "foreman", Name: "Foreman", BasePrice: 10000, GrowthRate: 0.5, IncomePerUnit: 10},
			{ID: "contractor", Name: "Contractor", BasePrice: 100000, GrowthRate: 0.5, IncomePerUnit: 100},
			{ID: "megacorp", Name: "Megacorp", BasePrice: 1000000, GrowthRate: 0.5, IncomePerUnit: 1000},
		},
		Upgrades: []model.UpgradeDef{
			{ID: "better-bribes", Name: "Better bribes", BasePrice: 1000, Currency: model.CurrencyOrdinary, Effect: model.EffectClickPower, Value: 2, MaxTier: 10},
			{ID: "corrupt-network", Name: "Kickback network", BasePrice: 5000, Currency: model.CurrencyOrdinary, Effect: model.EffectPassiveIncome, Value: 1, MaxTier: 5},
			{ID: "offshore-accounts", Name: "Offshore accounts", BasePrice: 15000, Currency: model.CurrencyOrdinary, Effect: model.EffectMultiplier, Value: 2, MaxTier: 3},
			{ID: "golden-hammer", Name: "Golden hammer", BasePrice: 10, Currency: model.CurrencyPremium, Effect: model.EffectClickPower, Value: 50, MaxTier: 1},
			{ID: "crypto-mining", Name: "Crypto farm", BasePrice: 25, Currency: model.CurrencyPremium, Effect: model.EffectPassiveIncome, Value: 100, MaxTier: 1},
			{ID: "corruption-empire", Name: "Corruption empire", BasePrice: 50, Currency: model.CurrencyPremium, Effect: model.EffectMultiplier, Value: 10, MaxTier: 1},
		},
		Bonuses: []model.BonusDef{
			{Kind: model.BonusDouble, Name: "Double budget", Duration: 30 * time.Second, Multiplier: 2, Passive: true, Spawnable: true},
			{Kind: model.BonusMegaClick, Name: "Mega click", Duration: 10 * time.Second, Multiplier: 10, Spawnable: true},
			{Kind: model.BonusGoldenHour, Name: "Golden hour", Duration: time.Hour, Multiplier: 5, Passive: true},
		},
		Achievements: []model.AchievementDef{
			{ID: "first_million", Name: "First million", Reward: model.Reward{Kind: model.RewardCurrency, Value: 10000}},
			{ID: "curb_magnate", Name: "Curb magnate"},
			{ID: "speed_clicker", Name: "Speed of light"},
			{ID: "space_scale", Name: "Cosmic scale"},
			{ID: "golden_touch", Name: "Golden touch", Reward: model.Reward{Kind: model.RewardBonus, Bonus: model.BonusGoldenHour}},
			{ID: "city_legend", Name: "City legend", Reward: model.Reward{Kind: model.RewardMultiplier, Value: 2}},
		},
	}
}
