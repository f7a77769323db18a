package usage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	usagestore "promptsync-backend/lib/usage/store"
	usagetrackingstore "promptsync-backend/lib/usage/tracking-store"
	"promptsync-backend/lib/utils/helpers"
	"promptsync-backend/lib/utils/lock"
	"promptsync-backend/models"
)

var (
	ErrQuotaExceeded   = errors.New("превышен дневной лимит запросов")
	ErrUnknownCaller   = errors.New("профиль пользователя не найден")
	ErrReserveConflict = errors.New("не удалось зарезервировать запрос, попробуйте позже")
)

const (
	maxSwapAttempts = 5
	lockWait        = 5 * time.Second
)

type Limits struct {
	Free    int
	Premium int
}

func (l Limits) For(tier models.UserTier) int {
	if tier == models.TierPremium {
		return l.Premium
	}
	return l.Free
}

type Config struct {
	Limits   Limits
	Location *time.Location
	// Now источник времени, по умолчанию time.Now
	Now func() time.Time
}

type Provider interface {
	// CheckAndReserve списывает одну единицу квоты до запуска генерации
	CheckAndReserve(ctx context.Context, userID string) (models.UsageStatus, error)
	Remaining(ctx context.Context, userID string) (int, error)
	Limit(ctx context.Context, userID string) (int, error)
	Status(ctx context.Context, userID string) (models.UsageStatus, error)
}

func NewHandler(store usagestore.Provider, tracking usagetrackingstore.Provider, cfg Config) Provider {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &impl{
		store:    store,
		tracking: tracking,
		cfg:      cfg,
		locks:    lock.New(),
	}
}

type impl struct {
	store    usagestore.Provider
	tracking usagetrackingstore.Provider
	cfg      Config
	locks    *lock.KeyedLock
}

func (i *impl) today() string {
	return helpers.UsageDate(i.cfg.Now(), i.cfg.Location)
}

// effective счётчик с учётом ленивого сброса. Дата из будущего не сбрасывается и не сдвигается назад.
func effective(rec models.UsageRecord, today string) (usage int, date string) {
	if rec.LastUsageDate < today {
		return 0, today
	}
	return rec.DailyUsage, rec.LastUsageDate
}

func (i *impl) status(rec models.UsageRecord, usage int, date string) models.UsageStatus {
	limit := i.cfg.Limits.For(rec.Tier)
	remaining := limit - usage
	if remaining < 0 {
		remaining = 0
	}
	return models.UsageStatus{
		Tier:          rec.Tier,
		DailyUsage:    usage,
		Limit:         limit,
		Remaining:     remaining,
		LastUsageDate: date,
	}
}

func (i *impl) load(ctx context.Context, userID string) (models.UsageRecord, error) {
	rec, err := i.store.Get(ctx, userID)
	if err != nil {
		return models.UsageRecord{}, errors.Wrap(err, "ошибка получения счётчика запросов")
	}
	if rec == nil {
		return models.UsageRecord{}, ErrUnknownCaller
	}
	if !rec.Tier.IsValid() {
		rec.Tier = models.TierFree
	}
	return *rec, nil
}

func (i *impl) CheckAndReserve(ctx context.Context, userID string) (status models.UsageStatus, err error) {
	ok, err := i.locks.WithDelay(ctx, userID, lockWait, func() error {
		var reserveErr error
		status, reserveErr = i.reserve(ctx, userID)
		return reserveErr
	})
	if err != nil {
		return status, err
	}
	if !ok {
		return models.UsageStatus{}, ErrReserveConflict
	}
	return status, nil
}

func (i *impl) reserve(ctx context.Context, userID string) (models.UsageStatus, error) {
	logger := log.WithField("user_id", userID)
	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		if attempt > 0 && helpers.IsContextDone(ctx) {
			return models.UsageStatus{}, ctx.Err()
		}
		rec, err := i.load(ctx, userID)
		if err != nil {
			return models.UsageStatus{}, err
		}
		today := i.today()
		usage, date := effective(rec, today)
		if usage >= i.cfg.Limits.For(rec.Tier) {
			return i.status(rec, usage, date), ErrQuotaExceeded
		}

		next := rec
		next.DailyUsage = usage + 1
		next.LastUsageDate = date
		next.Version = rec.Version + 1
		swapped, err := i.store.CompareAndSwap(ctx, next, rec.Version)
		if err != nil {
			return models.UsageStatus{}, errors.Wrap(err, "ошибка сохранения счётчика запросов")
		}
		if swapped {
			i.track(ctx, userID, today, rec.Tier)
			return i.status(next, next.DailyUsage, next.LastUsageDate), nil
		}
		logger.WithField("attempt", attempt).Debug("версия счётчика изменилась, повторяем")
	}
	logger.Warn("не удалось зарезервировать запрос после повторов")
	return models.UsageStatus{}, ErrReserveConflict
}

func (i *impl) track(ctx context.Context, userID, date string, tier models.UserTier) {
	if i.tracking == nil {
		return
	}
	if err := i.tracking.Increment(ctx, userID, date, tier); err != nil {
		log.WithError(err).
			WithField("user_id", userID).
			Error("ошибка обновления статистики использования")
	}
}

func (i *impl) Status(ctx context.Context, userID string) (models.UsageStatus, error) {
	rec, err := i.load(ctx, userID)
	if err != nil {
		return models.UsageStatus{}, err
	}
	usage, date := effective(rec, i.today())
	return i.status(rec, usage, date), nil
}

func (i *impl) Remaining(ctx context.Context, userID string) (int, error) {
	st, err := i.Status(ctx, userID)
	if err != nil {
		return 0, err
	}
	return st.Remaining, nil
}

func (i *impl) Limit(ctx context.Context, userID string) (int, error) {
	st, err := i.Status(ctx, userID)
	if err != nil {
		return 0, err
	}
	return st.Limit, nil
}
