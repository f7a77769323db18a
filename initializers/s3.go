package initializers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"promptsync-backend/config"
	s3client "promptsync-backend/s3"
)

// InitS3 возвращает nil, если хранилище не настроено или недоступно.
// Ссылки на выгрузки в этом случае отдают 503, остальной сервис работает.
func InitS3(ctx context.Context) s3client.Provider {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 не настроен, ссылки на выгрузки недоступны")
		return nil
	}
	client, err := s3client.NewClient(s3client.Params{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		UseSSL:          *config.Conf.S3.UseSSL,
		BucketName:      config.Conf.S3.BucketName,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return nil
	}
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = client.MakeBucket(checkCtx); err != nil {
		log.WithError(err).Error("S3 соединение не удалось, бакет недоступен")
		return nil
	}
	log.Info("S3 клиент успешно инициализирован")
	return client
}
