package usage

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	usagestore "promptsync-backend/lib/usage/store"
	"promptsync-backend/models"
)

var testNow = time.Date(2026, 5, 14, 10, 0, 0, 0, time.UTC)

type fakeTracking struct {
	mu    sync.Mutex
	count map[string]int
}

func (f *fakeTracking) Increment(ctx context.Context, userID, usageDate string, tier models.UserTier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count[userID+"/"+usageDate]++
	return nil
}

func newGovernor(store usagestore.Provider, tracking *fakeTracking) Provider {
	cfg := Config{
		Limits: Limits{Free: 50, Premium: 999},
		Now:    func() time.Time { return testNow },
	}
	if tracking == nil {
		return NewHandler(store, nil, cfg)
	}
	return NewHandler(store, tracking, cfg)
}

func TestCheckAndReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("quota monotonicity check", func(t *testing.T) {
		store := usagestore.NewMemoryInstance()
		store.Put(models.UsageRecord{UserID: "u1", Tier: models.TierFree, LastUsageDate: "2026-05-14"})
		tracking := &fakeTracking{count: map[string]int{}}
		g := newGovernor(store, tracking)
		for n := 1; n <= 50; n++ {
			st, err := g.CheckAndReserve(ctx, "u1")
			require.NoError(t, err)
			require.Equal(t, n, st.DailyUsage)
		}
		st, err := g.CheckAndReserve(ctx, "u1")
		require.ErrorIs(t, err, ErrQuotaExceeded)
		require.Equal(t, 50, st.DailyUsage)
		require.Equal(t, 0, st.Remaining)

		rec, err := store.Get(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, 50, rec.DailyUsage)
		require.Equal(t, 50, tracking.count["u1/2026-05-14"])
	})
	t.Run("daily reset check", func(t *testing.T) {
		store := usagestore.NewMemoryInstance()
		store.Put(models.UsageRecord{UserID: "u2", Tier: models.TierFree, DailyUsage: 37, LastUsageDate: "2026-05-13", Version: 7})
		g := newGovernor(store, nil)
		st, err := g.CheckAndReserve(ctx, "u2")
		require.NoError(t, err)
		require.Equal(t, 1, st.DailyUsage)
		require.Equal(t, "2026-05-14", st.LastUsageDate)

		rec, err := store.Get(ctx, "u2")
		require.NoError(t, err)
		require.Equal(t, 1, rec.DailyUsage)
		require.Equal(t, "2026-05-14", rec.LastUsageDate)
		require.Equal(t, int64(8), rec.Version)
	})
	t.Run("exhausted yesterday is reset check", func(t *testing.T) {
		store := usagestore.NewMemoryInstance()
		store.Put(models.UsageRecord{UserID: "u3", Tier: models.TierFree, DailyUsage: 50, LastUsageDate: "2026-05-13"})
		g := newGovernor(store, nil)
		st, err := g.CheckAndReserve(ctx, "u3")
		require.NoError(t, err)
		require.Equal(t, 1, st.DailyUsage)
	})
	t.Run("at limit rejected without write check", func(t *testing.T) {
		store := usagestore.NewMemoryInstance()
		store.Put(models.UsageRecord{UserID: "u4", Tier: models.TierFree, DailyUsage: 50, LastUsageDate: "2026-05-14", Version: 3})
		g := newGovernor(store, nil)
		_, err := g.CheckAndReserve(ctx, "u4")
		require.ErrorIs(t, err, ErrQuotaExceeded)
		rec, _ := store.Get(ctx, "u4")
		require.Equal(t, int64(3), rec.Version)
		require.Equal(t, 50, rec.DailyUsage)
	})
	t.Run("future date is not reset check", func(t *testing.T) {
		store := usagestore.NewMemoryInstance()
		store.Put(models.UsageRecord{UserID: "u5", Tier: models.TierFree, DailyUsage: 10, LastUsageDate: "2026-05-15"})
		g := newGovernor(store, nil)
		st, err := g.CheckAndReserve(ctx, "u5")
		require.NoError(t, err)
		require.Equal(t, 11, st.DailyUsage)
		require.Equal(t, "2026-05-15", st.LastUsageDate)
	})
	t.Run("premium limit check", func(t *testing.T) {
		store := usagestore.NewMemoryInstance()
		store.Put(models.UsageRecord{UserID: "p1", Tier: models.TierPremium, DailyUsage: 998, LastUsageDate: "2026-05-14"})
		g := newGovernor(store, nil)
		st, err := g.CheckAndReserve(ctx, "p1")
		require.NoError(t, err)
		require.Equal(t, 999, st.DailyUsage)
		_, err = g.CheckAndReserve(ctx, "p1")
		require.ErrorIs(t, err, ErrQuotaExceeded)
	})
	t.Run("unknown caller check", func(t *testing.T) {
		g := newGovernor(usagestore.NewMemoryInstance(), nil)
		_, err := g.CheckAndReserve(ctx, "nobody")
		require.ErrorIs(t, err, ErrUnknownCaller)
	})
	t.Run("concurrent reserves check", func(t *testing.T) {
		store := usagestore.NewMemoryInstance()
		store.Put(models.UsageRecord{UserID: "c1", Tier: models.TierFree, LastUsageDate: "2026-05-01"})
		g := newGovernor(store, nil)
		var okCount, exceeded atomic.Int32
		wg := sync.WaitGroup{}
		for n := 0; n < 80; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := g.CheckAndReserve(ctx, "c1")
				if err == nil {
					okCount.Add(1)
				} else if err == ErrQuotaExceeded {
					exceeded.Add(1)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, int32(50), okCount.Load())
		require.Equal(t, int32(30), exceeded.Load())
		rec, _ := store.Get(ctx, "c1")
		require.Equal(t, 50, rec.DailyUsage)
	})
	t.Run("version conflict retry check", func(t *testing.T) {
		store := usagestore.NewMemoryInstance()
		store.Put(models.UsageRecord{UserID: "r1", Tier: models.TierFree, DailyUsage: 5, LastUsageDate: "2026-05-14", Version: 1})
		interfered := false
		store.BeforeSwap = func(userID string) {
			if interfered {
				return
			}
			interfered = true
			// конкурирующий процесс успел записать раньше
			store.Put(models.UsageRecord{UserID: "r1", Tier: models.TierFree, DailyUsage: 6, LastUsageDate: "2026-05-14", Version: 2})
		}
		g := newGovernor(store, nil)
		st, err := g.CheckAndReserve(ctx, "r1")
		require.NoError(t, err)
		require.Equal(t, 7, st.DailyUsage)
	})
	t.Run("persistent conflict fails closed check", func(t *testing.T) {
		store := usagestore.NewMemoryInstance()
		store.Put(models.UsageRecord{UserID: "r2", Tier: models.TierFree, LastUsageDate: "2026-05-14"})
		version := int64(0)
		store.BeforeSwap = func(userID string) {
			version += 10
			store.Put(models.UsageRecord{UserID: "r2", Tier: models.TierFree, LastUsageDate: "2026-05-14", Version: version})
		}
		g := newGovernor(store, nil)
		_, err := g.CheckAndReserve(ctx, "r2")
		require.ErrorIs(t, err, ErrReserveConflict)
	})
	t.Run("cancelled request stops retries check", func(t *testing.T) {
		store := usagestore.NewMemoryInstance()
		store.Put(models.UsageRecord{UserID: "r3", Tier: models.TierFree, LastUsageDate: "2026-05-14"})
		reqCtx, cancel := context.WithCancel(ctx)
		swaps := 0
		store.BeforeSwap = func(userID string) {
			swaps++
			store.Put(models.UsageRecord{UserID: "r3", Tier: models.TierFree, LastUsageDate: "2026-05-14", Version: int64(swaps)})
			cancel()
		}
		g := newGovernor(store, nil)
		_, err := g.CheckAndReserve(reqCtx, "r3")
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, 1, swaps)
	})
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	store := usagestore.NewMemoryInstance()
	store.Put(models.UsageRecord{UserID: "s1", Tier: models.TierFree, DailyUsage: 12, LastUsageDate: "2026-05-14"})
	store.Put(models.UsageRecord{UserID: "s2", Tier: models.TierPremium, DailyUsage: 400, LastUsageDate: "2026-05-10"})
	g := newGovernor(store, nil)

	t.Run("remaining check", func(t *testing.T) {
		remaining, err := g.Remaining(ctx, "s1")
		require.NoError(t, err)
		require.Equal(t, 38, remaining)
		limit, err := g.Limit(ctx, "s1")
		require.NoError(t, err)
		require.Equal(t, 50, limit)
	})
	t.Run("stale record view check", func(t *testing.T) {
		st, err := g.Status(ctx, "s2")
		require.NoError(t, err)
		require.Equal(t, 0, st.DailyUsage)
		require.Equal(t, 999, st.Remaining)
		rec, _ := store.Get(ctx, "s2")
		require.Equal(t, 400, rec.DailyUsage)
	})
}
