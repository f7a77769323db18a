package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "promptsync-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.UserProfile{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры UserProfile")
	}
	if err := DB.AutoMigrate(&dbmodels.UsageTracking{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры UsageTracking")
	}
	if err := DB.AutoMigrate(&dbmodels.PromptHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры PromptHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.AiLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AiLog")
	}
	if err := DB.AutoMigrate(&dbmodels.WaitlistEntry{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WaitlistEntry")
	}
	if err := DB.AutoMigrate(&dbmodels.ExportFile{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ExportFile")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
