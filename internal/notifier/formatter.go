package notifier

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"CurbClicker/internal/model"
)

// FormatEvent renders an engine event as a Telegram HTML message.
// Unknown kinds yield an empty string.
func FormatEvent(evt model.Event) string {
	p := evt.Payload
	switch evt.Kind {
	case model.EventLevelUp:
		return fmt.Sprintf("⬆️ <b>Level %v reached!</b>\nClick power is now %s.",
			p["level"], formatAmount(p["clickPower"]))
	case model.EventAchievementUnlocked:
		msg := fmt.Sprintf("🏆 <b>Achievement unlocked:</b> %s", html.EscapeString(fmt.Sprint(p["name"])))
		if r, ok := p["reward"].(string); ok && r != "" {
			msg += fmt.Sprintf("\nReward: %s", r)
		}
		return msg
	case model.EventBonusOffered:
		return fmt.Sprintf("🎁 <b>%s bonus on the curb!</b>\nClaim it within %v seconds.",
			bonusName(p["kind"]), p["seconds"])
	case model.EventBonusActivated:
		return fmt.Sprintf("🔥 <b>%s</b> active: ×%v for %s.",
			bonusName(p["kind"]), p["multiplier"], formatSeconds(p["seconds"]))
	case model.EventBonusExpired:
		return fmt.Sprintf("⌛ %s bonus has ended.", bonusName(p["kind"]))
	case model.EventOfflineEarnings:
		return fmt.Sprintf("💰 <b>Welcome back!</b>\nYour crews earned %s while you were away (%s).",
			formatAmount(p["earned"]), formatSeconds(p["seconds"]))
	}
	return ""
}

// FormatStatus summarizes a state for the startup and shutdown messages.
func FormatStatus(st *model.EconomyState) string {
	var b strings.Builder
	b.WriteString("📦 <b>Curb empire</b>\n\n")
	b.WriteString(fmt.Sprintf("Budget: %s\n", formatAmount(st.Currency)))
	b.WriteString(fmt.Sprintf("Premium: %d\n", st.Premium))
	b.WriteString(fmt.Sprintf("Level: %d (%s XP)\n", st.Level, formatAmount(st.Experience)))
	b.WriteString(fmt.Sprintf("Total earned: %s\n", formatAmount(st.TotalEarned)))
	b.WriteString(fmt.Sprintf("Clicks: %d | Achievements: %d\n", st.Stats.TotalClicks, len(st.Achievements)))
	if st.Stats.LastPersistedAtEpochMs > 0 {
		b.WriteString(fmt.Sprintf("Last save: %s\n", time.UnixMilli(st.Stats.LastPersistedAtEpochMs).Format("2006-01-02 15:04")))
	}
	return b.String()
}

func bonusName(v any) string {
	switch model.BonusKind(fmt.Sprint(v)) {
	case model.BonusDouble:
		return "Double income"
	case model.BonusMegaClick:
		return "Megaclick"
	case model.BonusGoldenHour:
		return "Golden hour"
	}
	return html.EscapeString(fmt.Sprint(v))
}

// formatAmount groups digits in thousands: 1234567 → "1 234 567".
func formatAmount(v any) string {
	var n int64
	switch x := v.(type) {
	case int64:
		n = x
	case int:
		n = int64(x)
	case float64:
		n = int64(x)
	default:
		return fmt.Sprint(v)
	}
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func formatSeconds(v any) string {
	var secs int64
	switch x := v.(type) {
	case int64:
		secs = x
	case int:
		secs = int64(x)
	case float64:
		secs = int64(x)
	default:
		return fmt.Sprint(v)
	}
	return (time.Duration(secs) * time.Second).String()
}
