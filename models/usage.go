package models

// UsageDateLayout формат хранения даты последнего использования
const UsageDateLayout = "2006-01-02"

// UsageRecord дневной счётчик вызовов пользователя, версия для compare-and-swap
type UsageRecord struct {
	UserID        string
	Tier          UserTier
	DailyUsage    int
	LastUsageDate string
	Version       int64
}

type UsageStatus struct {
	Tier          UserTier `json:"tier"`
	DailyUsage    int      `json:"daily_usage"`
	Limit         int      `json:"limit"`
	Remaining     int      `json:"remaining"`
	LastUsageDate string   `json:"last_usage_date"`
}
