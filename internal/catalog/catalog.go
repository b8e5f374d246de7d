// Package catalog holds the static game tables: producers, upgrades, bonuses and
// achievements. Declaration order is significant and is preserved everywhere.
package catalog

import (
	"fmt"
	"os"

	"CurbClicker/internal/model"

	"gopkg.in/yaml.v3"
)

// Catalog is an immutable set of definitions shared by every engine component.
type Catalog struct {
	Producers    []model.ProducerDef    `yaml:"producers"`
	Upgrades     []model.UpgradeDef     `yaml:"upgrades"`
	Bonuses      []model.BonusDef       `yaml:"bonuses"`
	Achievements []model.AchievementDef `yaml:"achievements"`
}

// Load reads a catalog from a YAML file. Sections omitted in the file fall back to Default.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	def := Default()
	if len(c.Producers) == 0 {
		c.Producers = def.Producers
	}
	if len(c.Upgrades) == 0 {
		c.Upgrades = def.Upgrades
	}
	if len(c.Bonuses) == 0 {
		c.Bonuses = def.Bonuses
	}
	if len(c.Achievements) == 0 {
		c.Achievements = def.Achievements
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every definition is usable by the engine.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for _, p := range c.Producers {
		if p.ID == "" || seen["p:"+p.ID] {
			return fmt.Errorf("producer %q: empty or duplicate id", p.ID)
		}
		seen["p:"+p.ID] = true
		if p.BasePrice <= 0 {
			return fmt.Errorf("producer %q: base_price must be positive", p.ID)
		}
		if p.GrowthRate < 0 || p.ClickMultiplier < 0 || p.IncomePerUnit < 0 {
			return fmt.Errorf("producer %q: growth, multiplier and income must not be negative", p.ID)
		}
	}
	for _, u := range c.Upgrades {
		if u.ID == "" || seen["u:"+u.ID] {
			return fmt.Errorf("upgrade %q: empty or duplicate id", u.ID)
		}
		seen["u:"+u.ID] = true
		if u.BasePrice <= 0 {
			return fmt.Errorf("upgrade %q: base_price must be positive", u.ID)
		}
		if u.MaxTier < 1 {
			return fmt.Errorf("upgrade %q: max_tier must be at least 1", u.ID)
		}
		switch u.Currency {
		case model.CurrencyOrdinary, model.CurrencyPremium:
		default:
			return fmt.Errorf("upgrade %q: unknown currency %q", u.ID, u.Currency)
		}
		switch u.Effect {
		case model.EffectClickPower, model.EffectPassiveIncome:
			if u.Value < 0 {
				return fmt.Errorf("upgrade %q: additive value must not be negative", u.ID)
			}
		case model.EffectMultiplier:
			if u.Value < 1 {
				return fmt.Errorf("upgrade %q: multiplier must be at least 1", u.ID)
			}
		default:
			return fmt.Errorf("upgrade %q: unknown effect %q", u.ID, u.Effect)
		}
	}
	for _, b := range c.Bonuses {
		if seen["b:"+string(b.Kind)] {
			return fmt.Errorf("bonus %q: duplicate kind", b.Kind)
		}
		seen["b:"+string(b.Kind)] = true
		if b.Duration <= 0 || b.Multiplier < 1 {
			return fmt.Errorf("bonus %q: duration must be positive and multiplier at least 1", b.Kind)
		}
	}
	for _, a := range c.Achievements {
		if a.ID == "" || seen["a:"+a.ID] {
			return fmt.Errorf("achievement %q: empty or duplicate id", a.ID)
		}
		seen["a:"+a.ID] = true
		if a.Reward.Kind == model.RewardBonus && !seen["b:"+string(a.Reward.Bonus)] {
			return fmt.Errorf("achievement %q: rewards unknown bonus %q", a.ID, a.Reward.Bonus)
		}
	}
	return nil
}

// Producer looks up a producer definition by id.
func (c *Catalog) Producer(id string) (model.ProducerDef, bool) {
	for _, p := range c.Producers {
		if p.ID == id {
			return p, true
		}
	}
	return model.ProducerDef{}, false
}

// Upgrade looks up an upgrade definition by id.
func (c *Catalog) Upgrade(id string) (model.UpgradeDef, bool) {
	for _, u := range c.Upgrades {
		if u.ID == id {
			return u, true
		}
	}
	return model.UpgradeDef{}, false
}

// Bonus looks up a bonus definition by kind.
func (c *Catalog) Bonus(kind model.BonusKind) (model.BonusDef, bool) {
	for _, b := range c.Bonuses {
		if b.Kind == kind {
			return b, true
		}
	}
	return model.BonusDef{}, false
}

// Achievement looks up an achievement definition by id.
func (c *Catalog) Achievement(id string) (model.AchievementDef, bool) {
	for _, a := range c.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return model.AchievementDef{}, false
}

// SpawnableBonuses returns the kinds the random spawner may offer, in declaration order.
func (c *Catalog) SpawnableBonuses() []model.BonusKind {
	var kinds []model.BonusKind
	for _, b := range c.Bonuses {
		if b.Spawnable {
			kinds = append(kinds, b.Kind)
		}
	}
	return kinds
}
