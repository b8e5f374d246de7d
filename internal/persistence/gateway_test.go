package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"CurbClicker/internal/catalog"
	"CurbClicker/internal/clock"
	"CurbClicker/internal/economy"
	"CurbClicker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newGatewayForTest(t *testing.T) (*Gateway, *MemoryStore, *clock.Fake) {
	t.Helper()
	store := NewMemoryStore()
	clk := clock.NewFake(start)
	return NewGateway(store, catalog.Default(), clk, "42", DefaultOptions()), store, clk
}

func stateWith(mutate func(st *model.EconomyState)) model.EconomyState {
	st := economy.DefaultState(catalog.Default())
	mutate(st)
	return *st
}

// rewrite decodes the stored blob, applies fn and stores it back untouched otherwise.
func rewrite(t *testing.T, store *MemoryStore, key string, fn func(s *snapshot)) {
	t.Helper()
	blob, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	s, err := decode(blob)
	require.NoError(t, err)
	fn(&s)
	out, err := encode(s)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), key, out))
}

func TestScopeKey(t *testing.T) {
	assert.Equal(t, "curb_clicker_42", ScopeKey("42"))
	assert.Equal(t, "curb_clicker_guest", ScopeKey(""))
	assert.Equal(t, "curb_clicker_guest", ScopeKey("   "))
	assert.Equal(t, "curb_clicker_a_b", ScopeKey("a/b"))
}

func TestChecksum_Deterministic(t *testing.T) {
	a := Checksum(1500, 2, 3000, 40)
	assert.Equal(t, a, Checksum(1500, 2, 3000, 40))
	assert.NotEqual(t, a, Checksum(1501, 2, 3000, 40))
	assert.NotEqual(t, a, Checksum(1500, 2, 3000, 41))
}

func TestGateway_RoundTrip(t *testing.T) {
	ctx := context.Background()
	g, _, clk := newGatewayForTest(t)

	eng := economy.NewEngine(catalog.Default(), clk, economy.DefaultOptions(), nil)
	eng.Restore(stateWith(func(st *model.EconomyState) {
		st.Currency = 5000
		st.TotalEarned = 5000
	}))
	for i := 0; i < 5; i++ {
		_, err := eng.RegisterClick()
		require.NoError(t, err)
	}
	require.NoError(t, eng.PurchaseProducer("concrete"))
	require.NoError(t, eng.PurchaseProducer("concrete"))
	require.NoError(t, eng.PurchaseUpgrade("better-bribes"))

	ts, err := g.Save(ctx, eng.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, start.UnixMilli(), ts)
	eng.MarkPersisted(ts)

	res, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, eng.Snapshot(), res.State)
	assert.Zero(t, res.OfflineEarned)
	assert.Zero(t, res.OfflineSeconds)
}

func TestGateway_OfflineAccrualCapped(t *testing.T) {
	ctx := context.Background()
	g, _, clk := newGatewayForTest(t)

	st := stateWith(func(st *model.EconomyState) {
		h := st.Producers["foreman"]
		h.OwnedCount = 1
		st.Producers["foreman"] = h
	})
	_, err := g.Save(ctx, st)
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	res, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), res.OfflineSeconds)
	assert.Equal(t, int64(36000), res.OfflineEarned)
	assert.Equal(t, int64(36000), res.State.Currency)
	assert.Equal(t, int64(36000), res.State.TotalEarned)
}

func TestGateway_OfflineAccrualUnderCap(t *testing.T) {
	ctx := context.Background()
	g, _, clk := newGatewayForTest(t)

	st := stateWith(func(st *model.EconomyState) {
		h := st.Producers["student"]
		h.OwnedCount = 3
		st.Producers["student"] = h
	})
	_, err := g.Save(ctx, st)
	require.NoError(t, err)

	clk.Advance(90*time.Second + 400*time.Millisecond)
	res, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(90), res.OfflineSeconds)
	assert.Equal(t, int64(270), res.OfflineEarned)
}

func TestGateway_ActiveBonusNotRestored(t *testing.T) {
	ctx := context.Background()
	g, _, clk := newGatewayForTest(t)

	st := stateWith(func(st *model.EconomyState) {
		h := st.Producers["foreman"]
		h.OwnedCount = 1
		st.Producers["foreman"] = h
		st.ActiveBonus = &model.ActiveBonus{
			Kind:             model.BonusGoldenHour,
			ExpiresAtEpochMs: start.Add(time.Hour).UnixMilli(),
		}
	})
	_, err := g.Save(ctx, st)
	require.NoError(t, err)

	clk.Advance(10 * time.Second)
	res, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, res.State.ActiveBonus)
	// offline credit ignores the bonus that was running at save time
	assert.Equal(t, int64(100), res.OfflineEarned)
}

func TestGateway_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		tamper  func(s *snapshot)
		advance time.Duration
		wantErr error
	}{
		{
			name:    "currency edited without checksum",
			tamper:  func(s *snapshot) { s.Currency = 999999 },
			wantErr: model.ErrCorruptSave,
		},
		{
			name: "negative currency with valid checksum",
			tamper: func(s *snapshot) {
				s.Currency = -1
				s.Checksum = Checksum(s.Currency, s.Level, s.TotalEarned, s.Stats.TotalClicks)
			},
			wantErr: model.ErrCorruptSave,
		},
		{
			name: "level below one",
			tamper: func(s *snapshot) {
				s.Level = 0
				s.Checksum = Checksum(s.Currency, s.Level, s.TotalEarned, s.Stats.TotalClicks)
			},
			wantErr: model.ErrCorruptSave,
		},
		{
			name:    "missing checksum",
			tamper:  func(s *snapshot) { s.Checksum = "" },
			wantErr: model.ErrCorruptSave,
		},
		{
			name:    "missing timestamp",
			tamper:  func(s *snapshot) { s.Timestamp = 0 },
			wantErr: model.ErrCorruptSave,
		},
		{
			name: "earn rate above ceiling",
			tamper: func(s *snapshot) {
				s.TotalEarned = 50_000_000
				s.Checksum = Checksum(s.Currency, s.Level, s.TotalEarned, s.Stats.TotalClicks)
			},
			advance: 10 * time.Second,
			wantErr: model.ErrImplausibleProgress,
		},
		{
			name:    "timestamp in the future",
			tamper:  func(s *snapshot) { s.Timestamp = start.Add(time.Minute).UnixMilli() },
			wantErr: model.ErrImplausibleProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			g, store, clk := newGatewayForTest(t)

			_, err := g.Save(ctx, stateWith(func(st *model.EconomyState) {
				st.Currency = 1200
				st.TotalEarned = 1500
				st.Stats.TotalClicks = 30
			}))
			require.NoError(t, err)
			rewrite(t, store, g.Scope(), tt.tamper)

			clk.Advance(tt.advance)
			res, err := g.Load(ctx)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGateway_EarnRateWithinCeiling(t *testing.T) {
	ctx := context.Background()
	g, _, clk := newGatewayForTest(t)

	_, err := g.Save(ctx, stateWith(func(st *model.EconomyState) {
		st.TotalEarned = 5_000_000
	}))
	require.NoError(t, err)

	clk.Advance(10 * time.Second)
	_, err = g.Load(ctx)
	assert.NoError(t, err)
}

func TestGateway_UndecodableBlob(t *testing.T) {
	ctx := context.Background()
	g, store, _ := newGatewayForTest(t)

	require.NoError(t, store.Put(ctx, g.Scope(), []byte("not base64 at all!")))
	_, err := g.Load(ctx)
	assert.ErrorIs(t, err, model.ErrCorruptSave)

	require.NoError(t, store.Put(ctx, g.Scope(), []byte("bm90IGpzb24=")))
	_, err = g.Load(ctx)
	assert.ErrorIs(t, err, model.ErrCorruptSave)
}

func TestGateway_NoSaveAndClear(t *testing.T) {
	ctx := context.Background()
	g, _, _ := newGatewayForTest(t)

	_, err := g.Load(ctx)
	assert.ErrorIs(t, err, model.ErrNoSave)

	_, err = g.Save(ctx, stateWith(func(*model.EconomyState) {}))
	require.NoError(t, err)
	require.NoError(t, g.Clear(ctx))

	_, err = g.Load(ctx)
	assert.ErrorIs(t, err, model.ErrNoSave)
}

func TestGateway_ScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	clk := clock.NewFake(start)
	alice := NewGateway(store, catalog.Default(), clk, "alice", DefaultOptions())
	guest := NewGateway(store, catalog.Default(), clk, "", DefaultOptions())

	_, err := alice.Save(ctx, stateWith(func(st *model.EconomyState) { st.Currency = 10 }))
	require.NoError(t, err)

	_, err = guest.Load(ctx)
	assert.ErrorIs(t, err, model.ErrNoSave)
}

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStore) Put(context.Context, string, []byte) error   { return f.err }
func (f failingStore) Delete(context.Context, string) error        { return f.err }
func (f failingStore) Close() error                                { return nil }

func TestGateway_StorageUnavailable(t *testing.T) {
	ctx := context.Background()
	diskErr := errors.New("disk full")
	g := NewGateway(failingStore{err: diskErr}, catalog.Default(), clock.NewFake(start), "42", DefaultOptions())

	_, err := g.Save(ctx, stateWith(func(*model.EconomyState) {}))
	assert.ErrorIs(t, err, model.ErrStorageUnavailable)
	assert.ErrorIs(t, err, diskErr)

	_, err = g.Load(ctx)
	assert.ErrorIs(t, err, model.ErrStorageUnavailable)

	assert.ErrorIs(t, g.Clear(ctx), model.ErrStorageUnavailable)
}
