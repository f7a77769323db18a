package filestorage

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	filesdbstorage "promptsync-backend/lib/file-storage/storage"
	dbmodels "promptsync-backend/models/db"
	s3client "promptsync-backend/s3"
)

var ErrStorageUnavailable = errors.New("файловое хранилище недоступно")

// RenderFunc формирует содержимое выгрузки, вызывается только если файла ещё нет в хранилище
type RenderFunc func() ([]byte, error)

type Provider interface {
	// ExportLink загружает выгрузку записи истории (один раз) и возвращает временную ссылку на неё
	ExportLink(ctx context.Context, userID, historyID string, format dbmodels.ExportFormat, fileName string, render RenderFunc) (string, error)
}

func NewHandler(s3 s3client.Provider, files filesdbstorage.Provider, linkExpire time.Duration) Provider {
	if linkExpire <= 0 {
		linkExpire = time.Hour
	}
	return &impl{
		s3:         s3,
		files:      files,
		linkExpire: linkExpire,
	}
}

type impl struct {
	s3         s3client.Provider
	files      filesdbstorage.Provider
	linkExpire time.Duration
}

func (i impl) ExportLink(ctx context.Context, userID, historyID string, format dbmodels.ExportFormat, fileName string, render RenderFunc) (string, error) {
	if i.s3 == nil {
		return "", ErrStorageUnavailable
	}
	logger := log.
		WithField("user_id", userID).
		WithField("history_id", historyID).
		WithField("format", format)

	if i.files != nil {
		rec, err := i.files.GetByHistory(ctx, userID, historyID, format)
		if err != nil {
			logger.WithError(err).Warn("ошибка поиска ранее загруженной выгрузки")
		} else if rec != nil {
			return i.presign(ctx, logger, rec.ObjectKey, rec.FileName)
		}
	}

	body, err := render()
	if err != nil {
		return "", err
	}
	key := objectKey(userID, historyID, format)
	if err = i.s3.PutObject(ctx, key, format.ContentType(), body); err != nil {
		logger.WithError(err).Error("ошибка загрузки выгрузки в S3")
		return "", errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	if i.files != nil {
		_, err = i.files.SaveFile(ctx, dbmodels.ExportFile{
			BaseUserModel: dbmodels.BaseUserModel{UserID: userID},
			HistoryID:     historyID,
			ObjectKey:     key,
			FileName:      fileName,
			Format:        format,
		})
		if err != nil {
			logger.WithError(err).Warn("ошибка сохранения сведений о выгрузке")
		}
	}
	return i.presign(ctx, logger, key, fileName)
}

func (i impl) presign(ctx context.Context, logger *log.Entry, key, fileName string) (string, error) {
	link, err := i.s3.PresignedGet(ctx, key, fileName, i.linkExpire)
	if err != nil {
		logger.WithError(err).Error("ошибка получения ссылки на выгрузку")
		return "", errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	return link, nil
}

func objectKey(userID, historyID string, format dbmodels.ExportFormat) string {
	return fmt.Sprintf("exports/%s/%s.%s", userID, historyID, format)
}
