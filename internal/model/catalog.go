package model

import "time"

// BonusKind identifies a temporary bonus.
type BonusKind string

const (
	BonusDouble     BonusKind = "double"
	BonusMegaClick  BonusKind = "megaclick"
	BonusGoldenHour BonusKind = "goldenhour"
)

// CurrencyKind selects the balance an upgrade is paid from.
type CurrencyKind string

const (
	CurrencyOrdinary CurrencyKind = "ordinary"
	CurrencyPremium  CurrencyKind = "premium"
)

// EffectKind is the permanent effect of one upgrade tier.
type EffectKind string

const (
	EffectClickPower    EffectKind = "click_power"    // additive per click
	EffectPassiveIncome EffectKind = "passive_income" // additive per second
	EffectMultiplier    EffectKind = "multiplier"     // multiplicative, all income
)

// RewardKind is what an achievement grants when unlocked.
type RewardKind string

const (
	RewardNone       RewardKind = ""
	RewardCurrency   RewardKind = "currency"
	RewardMultiplier RewardKind = "multiplier"
	RewardBonus      RewardKind = "bonus"
)

// ProducerDef describes a purchasable producer. ClickMultiplier of zero means the
// producer never boosts clicks; IncomePerUnit of zero means no passive income.
type ProducerDef struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	BasePrice       int64   `yaml:"base_price"`
	GrowthRate      float64 `yaml:"growth_rate"`
	ClickMultiplier float64 `yaml:"click_multiplier"`
	IncomePerUnit   int64   `yaml:"income_per_unit"`
}

// UpgradeDef describes a capped, tiered permanent modifier.
type UpgradeDef struct {
	ID        string       `yaml:"id"`
	Name      string       `yaml:"name"`
	BasePrice int64        `yaml:"base_price"`
	Currency  CurrencyKind `yaml:"currency"`
	Effect    EffectKind   `yaml:"effect"`
	Value     float64      `yaml:"value"`
	MaxTier   int          `yaml:"max_tier"`
}

// BonusDef describes a temporary bonus kind.
type BonusDef struct {
	Kind       BonusKind     `yaml:"kind"`
	Name       string        `yaml:"name"`
	Duration   time.Duration `yaml:"duration"`
	Multiplier float64       `yaml:"multiplier"`
	Passive    bool          `yaml:"passive"`   // also multiplies passive income
	Spawnable  bool          `yaml:"spawnable"` // may be offered by the random spawner
}

// Reward is granted once when an achievement unlocks.
type Reward struct {
	Kind  RewardKind `yaml:"kind"`
	Value float64    `yaml:"value"`
	Bonus BonusKind  `yaml:"bonus"`
}

// AchievementDef describes a one-off milestone. The unlock condition lives in code.
type AchievementDef struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Reward Reward `yaml:"reward"`
}
