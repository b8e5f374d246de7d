package persistence

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"

	"CurbClicker/internal/model"
)

// snapshot is the persisted layout. The active bonus is deliberately absent:
// bonuses never survive a reload.
type snapshot struct {
	Currency               int64                    `json:"currency"`
	Premium                int64                    `json:"premium"`
	TotalEarned            int64                    `json:"totalEarned"`
	Level                  int                      `json:"level"`
	Experience             int64                    `json:"experience"`
	ClickPower             int64                    `json:"clickPower"`
	Producers              map[string]savedProducer `json:"producers"`
	Upgrades               map[string]savedUpgrade  `json:"upgrades"`
	Stats                  savedStats               `json:"stats"`
	UnlockedAchievementIDs []string                 `json:"unlockedAchievementIds"`
	Checksum               string                   `json:"checksum"`
	Timestamp              int64                    `json:"timestamp"`
}

type savedProducer struct {
	OwnedCount   int64 `json:"ownedCount"`
	CurrentPrice int64 `json:"currentPrice"`
}

type savedUpgrade struct {
	OwnedTier    int   `json:"ownedTier"`
	CurrentPrice int64 `json:"currentPrice"`
}

type savedStats struct {
	TotalClicks        int64 `json:"totalClicks"`
	TotalPurchases     int64 `json:"totalPurchases"`
	MaxClicksPerSecond int   `json:"maxClicksPerSecond"`
	PlayTimeSeconds    int64 `json:"playTimeSeconds"`
	LastPersistedAt    int64 `json:"lastPersistedAt"`
}

// Checksum is a tamper tripwire over the headline numbers, not a security
// boundary: FNV-1a 64 of "currency_level_totalEarned_totalClicks" in base36.
func Checksum(currency int64, level int, totalEarned, totalClicks int64) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d_%d_%d_%d", currency, level, totalEarned, totalClicks)
	return strconv.FormatUint(h.Sum64(), 36)
}

func fromState(st model.EconomyState, ts int64) snapshot {
	s := snapshot{
		Currency:    st.Currency,
		Premium:     st.Premium,
		TotalEarned: st.TotalEarned,
		Level:       st.Level,
		Experience:  st.Experience,
		ClickPower:  st.ClickPower,
		Producers:   make(map[string]savedProducer, len(st.Producers)),
		Upgrades:    make(map[string]savedUpgrade, len(st.Upgrades)),
		Stats: savedStats{
			TotalClicks:        st.Stats.TotalClicks,
			TotalPurchases:     st.Stats.TotalPurchases,
			MaxClicksPerSecond: st.Stats.MaxClicksPerSecond,
			PlayTimeSeconds:    st.Stats.PlayTimeSeconds,
			LastPersistedAt:    st.Stats.LastPersistedAtEpochMs,
		},
		UnlockedAchievementIDs: append([]string{}, st.Achievements...),
		Timestamp:              ts,
	}
	for id, h := range st.Producers {
		s.Producers[id] = savedProducer{OwnedCount: h.OwnedCount, CurrentPrice: h.CurrentPrice}
	}
	for id, h := range st.Upgrades {
		s.Upgrades[id] = savedUpgrade{OwnedTier: h.OwnedTier, CurrentPrice: h.CurrentPrice}
	}
	s.Checksum = Checksum(s.Currency, s.Level, s.TotalEarned, s.Stats.TotalClicks)
	return s
}

func (s snapshot) state() model.EconomyState {
	st := model.EconomyState{
		Currency:    s.Currency,
		Premium:     s.Premium,
		TotalEarned: s.TotalEarned,
		Level:       s.Level,
		Experience:  s.Experience,
		ClickPower:  s.ClickPower,
		Producers:   make(map[string]model.ProducerHolding, len(s.Producers)),
		Upgrades:    make(map[string]model.UpgradeHolding, len(s.Upgrades)),
		Stats: model.Stats{
			TotalClicks:            s.Stats.TotalClicks,
			TotalPurchases:         s.Stats.TotalPurchases,
			MaxClicksPerSecond:     s.Stats.MaxClicksPerSecond,
			PlayTimeSeconds:        s.Stats.PlayTimeSeconds,
			LastPersistedAtEpochMs: s.Stats.LastPersistedAt,
		},
		Achievements: append([]string{}, s.UnlockedAchievementIDs...),
	}
	for id, h := range s.Producers {
		st.Producers[id] = model.ProducerHolding{OwnedCount: h.OwnedCount, CurrentPrice: h.CurrentPrice}
	}
	for id, h := range s.Upgrades {
		st.Upgrades[id] = model.UpgradeHolding{OwnedTier: h.OwnedTier, CurrentPrice: h.CurrentPrice}
	}
	return st
}

func encode(s snapshot) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out, nil
}

func decode(blob []byte) (snapshot, error) {
	var s snapshot
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(blob)))
	n, err := base64.StdEncoding.Decode(raw, blob)
	if err != nil {
		return s, fmt.Errorf("base64: %w", err)
	}
	if err := json.Unmarshal(raw[:n], &s); err != nil {
		return s, fmt.Errorf("json: %w", err)
	}
	return s, nil
}
