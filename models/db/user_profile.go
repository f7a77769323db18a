package dbmodels

import (
	"promptsync-backend/models"
	"time"
)

type UserProfile struct {
	BaseModel
	Email         string          `gorm:"type:varchar(255);uniqueIndex"`
	Password      string          `gorm:"type:varchar(128)"`
	Name          string          `gorm:"type:varchar(150)"`
	Tier          models.UserTier `gorm:"type:varchar(20);default:free"`
	DailyUsage    int             `gorm:"default:0" comment:"Количество запросов за день"`
	LastUsageDate string          `gorm:"type:varchar(10)" comment:"Дата последнего запроса YYYY-MM-DD"`
	UsageVersion  int64           `gorm:"default:0" comment:"Версия счётчика для compare-and-swap"`
	LastLogin     time.Time
}

func (r UserProfile) ToUsageRecord() models.UsageRecord {
	return models.UsageRecord{
		UserID:        r.ID,
		Tier:          r.Tier,
		DailyUsage:    r.DailyUsage,
		LastUsageDate: r.LastUsageDate,
		Version:       r.UsageVersion,
	}
}

// UsageTracking агрегированная статистика запросов пользователя по дням
type UsageTracking struct {
	BaseModel
	UserID      string          `gorm:"type:varchar(36);uniqueIndex:idx_usage_user_date,priority:1"`
	UsageDate   string          `gorm:"type:varchar(10);uniqueIndex:idx_usage_user_date,priority:2"`
	PromptCount int             `gorm:"default:0"`
	Tier        models.UserTier `gorm:"type:varchar(20)"`
}

func (UsageTracking) TableName() string {
	return "usage_tracking"
}
