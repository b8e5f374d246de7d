package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"CurbClicker/internal/model"
	"CurbClicker/internal/notifier"
	"CurbClicker/internal/session"
)

// handleCommand processes a console command and returns a reply.
func handleCommand(ctx context.Context, sess *session.Session, line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "click", "c":
		res, err := sess.Engine.RegisterClick()
		if err != nil {
			return describe(err)
		}
		if res.LeveledUp {
			return fmt.Sprintf("+%d, level %d!", res.Yield, res.Level)
		}
		return fmt.Sprintf("+%d", res.Yield)
	case "buy":
		if err := sess.Engine.PurchaseProducer(arg); err != nil {
			return describe(err)
		}
		return "bought " + arg
	case "upgrade":
		if err := sess.Engine.PurchaseUpgrade(arg); err != nil {
			return describe(err)
		}
		return "upgraded " + arg
	case "claim":
		kind, ok := sess.ClaimBonus()
		if !ok {
			return "no bonus to claim"
		}
		return fmt.Sprintf("%s bonus claimed", kind)
	case "status":
		st := sess.Engine.Snapshot()
		return notifier.FormatStatus(&st) + fmt.Sprintf("Click: %d | Passive: %d/s", sess.Engine.ClickYield(), sess.Engine.PassiveYield())
	case "save":
		if err := sess.Scheduler.SaveNow(ctx, "manual"); err != nil {
			return describe(err)
		}
		return "saved"
	case "reset":
		if err := sess.ResetProgress(ctx); err != nil {
			return describe(err)
		}
		return "progress reset"
	default:
		return "commands: click | buy <producer> | upgrade <upgrade> | claim | status | save | reset"
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, model.ErrInsufficientFunds):
		return "not enough money"
	case errors.Is(err, model.ErrRateLimited):
		return "slow down"
	case errors.Is(err, model.ErrMaxTierReached):
		return "already at max tier"
	case errors.Is(err, model.ErrUnknownProducer), errors.Is(err, model.ErrUnknownUpgrade):
		return "no such item"
	}
	return "error: " + err.Error()
}
