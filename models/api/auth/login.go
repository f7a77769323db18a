package authapimodels

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"promptsync-backend/lib/utils/helpers"
)

const MinPasswordLength = 8

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if !helpers.IsValidEmail(helpers.NormalizeEmail(r.Email)) {
		return errors.New("почта имеет неправильный формат")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type RegisterRequest struct {
	Email    string `json:"email"`    // Почта, она же логин
	Password string `json:"password"` // Пароль, не короче 8 символов
	Name     string `json:"name"`     // Имя пользователя
}

func (r RegisterRequest) Validate() error {
	if !helpers.IsValidEmail(helpers.NormalizeEmail(r.Email)) {
		return errors.New("почта имеет неправильный формат")
	}
	if utf8.RuneCountInString(r.Password) < MinPasswordLength {
		return errors.Errorf("пароль должен быть не короче %d символов", MinPasswordLength)
	}
	// bcrypt учитывает только первые 72 байта
	if len(r.Password) > 72 {
		return errors.New("пароль слишком длинный")
	}
	if utf8.RuneCountInString(strings.TrimSpace(r.Name)) > 150 {
		return errors.New("имя слишком длинное")
	}
	return nil
}
