package waitlistapimodels

import (
	"time"

	"github.com/pkg/errors"
	"promptsync-backend/lib/utils/helpers"
	dbmodels "promptsync-backend/models/db"
)

type JoinRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"` // Откуда пришел пользователь, по умолчанию premium_upgrade
}

func (r JoinRequest) Validate() error {
	if !helpers.IsValidEmail(helpers.NormalizeEmail(r.Email)) {
		return errors.New("почта имеет неправильный формат")
	}
	if len(r.Source) > 100 {
		return errors.New("слишком длинное значение source")
	}
	return nil
}

type EntryView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	Created   bool      `json:"created"` // false если почта уже была в списке
	CreatedAt time.Time `json:"created_at"`
}

func Convert(rec dbmodels.WaitlistEntry, created bool) EntryView {
	return EntryView{
		ID:        rec.ID,
		Email:     rec.Email,
		Source:    rec.Source,
		Created:   created,
		CreatedAt: rec.CreatedAt,
	}
}
