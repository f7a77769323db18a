package ailogretentionworker

import (
	"context"
	"time"

	ailogstore "promptsync-backend/lib/ai/ai-log-store"
	baseworker "promptsync-backend/lib/utils/base-worker"
)

const (
	firstRunDelay = 30 * time.Second
	runInterval   = time.Hour
)

func StartWorker(ctx context.Context, store ailogstore.Provider, retentionDays int) {
	if retentionDays <= 0 {
		baseworker.NewInstance("AiLogRetentionWorker", 0, 0).
			GetLogger().
			Info("Очистка журнала ИИ отключена")
		return
	}
	i := newWorker(store, retentionDays, time.Now)
	go i.Run(ctx, i.handle)
}

func newWorker(store ailogstore.Provider, retentionDays int, now func() time.Time) *impl {
	return &impl{
		BaseImpl:  *baseworker.NewInstance("AiLogRetentionWorker", firstRunDelay, runInterval),
		store:     store,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       now,
	}
}

type impl struct {
	baseworker.BaseImpl
	store     ailogstore.Provider
	retention time.Duration
	now       func() time.Time
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	border := i.now().Add(-i.retention)
	deleted, err := i.store.DeleteOlderThan(ctx, border)
	if err != nil {
		logger.WithError(err).Error("Ошибка очистки журнала вызовов ИИ")
		return
	}
	if deleted > 0 {
		logger.
			WithField("deleted", deleted).
			WithField("border", border.Format(time.RFC3339)).
			Info("Журнал вызовов ИИ очищен")
	}
}
