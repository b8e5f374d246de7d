package main

import (
	"context"
	"testing"
	"time"

	"CurbClicker/internal/catalog"
	"CurbClicker/internal/clock"
	"CurbClicker/internal/persistence"
	"CurbClicker/internal/session"

	"github.com/stretchr/testify/assert"
)

func TestHandleCommand(t *testing.T) {
	ctx := context.Background()
	sess := session.New(ctx, session.Deps{
		Catalog: catalog.Default(),
		Store:   persistence.NewMemoryStore(),
		Clock:   clock.NewFake(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
	}, session.Options{PlayerID: "cli"})

	assert.Equal(t, "+1", handleCommand(ctx, sess, "click"))
	assert.Equal(t, "not enough money", handleCommand(ctx, sess, "buy concrete"))
	assert.Equal(t, "no such item", handleCommand(ctx, sess, "upgrade nothing"))
	assert.Equal(t, "no bonus to claim", handleCommand(ctx, sess, "claim"))
	assert.Equal(t, "saved", handleCommand(ctx, sess, "save"))
	assert.Contains(t, handleCommand(ctx, sess, "status"), "Clicks: 1")
	assert.Equal(t, "progress reset", handleCommand(ctx, sess, "reset"))
	assert.Contains(t, handleCommand(ctx, sess, "help"), "commands:")
	assert.Empty(t, handleCommand(ctx, sess, "   "))
}
