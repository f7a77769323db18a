package smtp

import (
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Provider interface {
	// SendEMail без настроенного smtp письмо не отправляется и ошибки нет
	SendEMail(to, subject, message string) error
	IsConfigured() bool
}

type Params struct {
	User       string
	Password   string
	Host       string
	Port       string
	TLSEnabled bool
	SenderName string
}

func NewClient(params Params) Provider {
	return &impl{params: params}
}

type impl struct {
	params Params
}

func (i impl) IsConfigured() bool {
	return i.params.User != "" && i.params.Host != "" && i.params.Port != ""
}

func (i impl) SendEMail(to, subject, message string) (err error) {
	logger := log.WithField("recipient", to)
	if !i.IsConfigured() {
		logger.Warn("письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	msg, err := buildMessage(i.params.SenderName, i.params.User, to, subject, message)
	if err != nil {
		logger.WithError(err).Error("ошибка формирования письма")
		return err
	}
	auth := sasl.NewPlainClient("", i.params.User, i.params.Password)
	body := strings.NewReader(msg)
	addr := i.params.Host + ":" + i.params.Port
	if i.params.TLSEnabled {
		err = smtp.SendMailTLS(addr, auth, i.params.User, []string{to}, body)
	} else {
		err = smtp.SendMail(addr, auth, i.params.User, []string{to}, body)
	}
	if err != nil {
		logger.WithError(err).Error("ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

func buildMessage(senderName, from, to, subject, message string) (string, error) {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, senderName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", message)
	sb := strings.Builder{}
	if _, err := m.WriteTo(&sb); err != nil {
		return "", errors.Wrap(err, "ошибка формирования письма")
	}
	return sb.String(), nil
}
