package model

// ProducerHolding tracks how many units of a producer the player owns.
type ProducerHolding struct {
	OwnedCount   int64 `json:"owned_count"`
	CurrentPrice int64 `json:"current_price"`
}

// UpgradeHolding tracks the purchased tier of an upgrade.
type UpgradeHolding struct {
	OwnedTier    int   `json:"owned_tier"`
	CurrentPrice int64 `json:"current_price"`
}

// ActiveBonus is a temporary multiplier. It has no effect once ExpiresAtEpochMs is reached.
type ActiveBonus struct {
	Kind             BonusKind `json:"kind"`
	ExpiresAtEpochMs int64     `json:"expires_at_epoch_ms"`
}

// Active reports whether the bonus still applies at nowMs.
func (b *ActiveBonus) Active(nowMs int64) bool {
	return b != nil && nowMs < b.ExpiresAtEpochMs
}

// Stats holds lifetime counters.
type Stats struct {
	TotalClicks            int64 `json:"total_clicks"`
	TotalPurchases         int64 `json:"total_purchases"`
	MaxClicksPerSecond     int   `json:"max_clicks_per_second"`
	PlayTimeSeconds        int64 `json:"play_time_seconds"`
	LastPersistedAtEpochMs int64 `json:"last_persisted_at_epoch_ms"`
}

// EconomyState is the canonical progression snapshot of one player.
type EconomyState struct {
	Currency     int64                      `json:"currency"`
	Premium      int64                      `json:"premium"`
	TotalEarned  int64                      `json:"total_earned"`
	Level        int                        `json:"level"`
	Experience   int64                      `json:"experience"`
	ClickPower   int64                      `json:"click_power"`
	Producers    map[string]ProducerHolding `json:"producers"`
	Upgrades     map[string]UpgradeHolding  `json:"upgrades"`
	ActiveBonus  *ActiveBonus               `json:"active_bonus,omitempty"`
	Stats        Stats                      `json:"stats"`
	Achievements []string                   `json:"achievements"`
}

// Clone returns a deep copy of the state.
func (s *EconomyState) Clone() EconomyState {
	c := *s
	c.Producers = make(map[string]ProducerHolding, len(s.Producers))
	for id, p := range s.Producers {
		c.Producers[id] = p
	}
	c.Upgrades = make(map[string]UpgradeHolding, len(s.Upgrades))
	for id, u := range s.Upgrades {
		c.Upgrades[id] = u
	}
	if s.ActiveBonus != nil {
		b := *s.ActiveBonus
		c.ActiveBonus = &b
	}
	c.Achievements = make([]string, len(s.Achievements))
	copy(c.Achievements, s.Achievements)
	return c
}

// HasAchievement reports whether id is already unlocked.
func (s *EconomyState) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Owned returns the owned count of a producer, zero when unknown.
func (s *EconomyState) Owned(producerID string) int64 {
	return s.Producers[producerID].OwnedCount
}
