package waitlist

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"promptsync-backend/lib/smtp"
	"promptsync-backend/lib/utils/helpers"
	waitliststore "promptsync-backend/lib/waitlist/store"
	dbmodels "promptsync-backend/models/db"
)

var ErrInvalidEmail = errors.New("некорректный email")

const (
	defaultSource = "premium_upgrade"
	mailSubject   = "You're on the PromptSync Premium waitlist"
	mailBody      = "Thanks for your interest in PromptSync Premium!\n\n" +
		"You're on the list. We'll email you as soon as Premium is available.\n\n" +
		"PromptSync team"
)

type Provider interface {
	// Join повторное добавление возвращает существующую запись, письмо отправляется только новым
	Join(ctx context.Context, email, source string) (entry dbmodels.WaitlistEntry, created bool, err error)
}

func NewHandler(store waitliststore.Provider, mail smtp.Provider) Provider {
	return impl{
		store: store,
		mail:  mail,
	}
}

type impl struct {
	store waitliststore.Provider
	mail  smtp.Provider
}

func (i impl) Join(ctx context.Context, email, source string) (dbmodels.WaitlistEntry, bool, error) {
	email = helpers.NormalizeEmail(email)
	if !helpers.IsValidEmail(email) {
		return dbmodels.WaitlistEntry{}, false, ErrInvalidEmail
	}
	source = strings.TrimSpace(source)
	if source == "" {
		source = defaultSource
	}
	logger := log.WithField("email", email).WithField("source", source)

	entry, created, err := i.store.Create(ctx, dbmodels.WaitlistEntry{Email: email, Source: source})
	if err != nil {
		logger.WithError(err).Error("ошибка добавления в лист ожидания")
		return dbmodels.WaitlistEntry{}, false, errors.New("ошибка добавления в лист ожидания")
	}
	if !created {
		logger.Info("email уже в листе ожидания")
		return entry, false, nil
	}
	logger.Info("email добавлен в лист ожидания")
	if i.mail != nil {
		if err = i.mail.SendEMail(email, mailSubject, mailBody); err != nil {
			logger.WithError(err).Warn("письмо подтверждения листа ожидания не отправлено")
		}
	}
	return entry, true, nil
}
