package initializers

import (
	log "github.com/sirupsen/logrus"
	"promptsync-backend/config"
	"promptsync-backend/lib/smtp"
)

// InitSmtp возвращает nil, если почта не настроена
func InitSmtp() smtp.Provider {
	client := smtp.NewClient(smtp.Params{
		User:       config.Conf.Smtp.User,
		Password:   config.Conf.Smtp.Password,
		Host:       config.Conf.Smtp.Host,
		Port:       config.Conf.Smtp.Port,
		TLSEnabled: *config.Conf.Smtp.TLSEnabled,
		SenderName: config.Conf.Waitlist.SenderName,
	})
	if !client.IsConfigured() {
		log.Warn("SMTP не настроен, письма листа ожидания отправляться не будут")
		return nil
	}
	return client
}
