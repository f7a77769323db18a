package authapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"promptsync-backend/models"
)

type JWTResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type JWTRefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r JWTRefreshRequest) Validate() error {
	if len(strings.TrimSpace(r.RefreshToken)) == 0 {
		return errors.New("refresh token не должен быть пустым")
	}
	return nil
}

type MeView struct {
	ID        string             `json:"id"`         // Идентификатор пользователя
	Email     string             `json:"email"`      // Почта
	Name      string             `json:"name"`       // Имя
	Tier      models.UserTier    `json:"tier"`       // Тариф
	TierName  string             `json:"tier_name"`  // Название тарифа
	Usage     models.UsageStatus `json:"usage"`      // Использование за сегодня
	CreatedAt time.Time          `json:"created_at"` // Дата регистрации
}
