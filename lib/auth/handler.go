package auth

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"promptsync-backend/lib/usage"
	usersstore "promptsync-backend/lib/users/store"
	authutils "promptsync-backend/lib/utils/auth-utils"
	"promptsync-backend/lib/utils/helpers"
	"promptsync-backend/models"
	authapimodels "promptsync-backend/models/api/auth"
	dbmodels "promptsync-backend/models/db"
)

var (
	ErrInvalidCredentials = errors.New("неверная почта или пароль")
	ErrUserNotFound       = errors.New("пользователь не найден")
)

type Provider interface {
	Register(ctx context.Context, req authapimodels.RegisterRequest) (authapimodels.JWTResponse, error)
	Login(ctx context.Context, email, password string) (authapimodels.JWTResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (authapimodels.JWTResponse, error)
	Me(ctx context.Context, userID string) (authapimodels.MeView, error)
}

func NewHandler(store usersstore.Provider, governor usage.Provider, loc *time.Location) Provider {
	if loc == nil {
		loc = time.UTC
	}
	return impl{
		store:    store,
		governor: governor,
		loc:      loc,
	}
}

type impl struct {
	store    usersstore.Provider
	governor usage.Provider
	loc      *time.Location
}

func (i impl) Register(ctx context.Context, req authapimodels.RegisterRequest) (authapimodels.JWTResponse, error) {
	email := helpers.NormalizeEmail(req.Email)
	logger := log.WithField("email", email)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err).Error("ошибка хеширования пароля")
		return authapimodels.JWTResponse{}, errors.New("ошибка регистрации пользователя")
	}
	rec := dbmodels.UserProfile{
		Email:         email,
		Password:      string(hash),
		Name:          strings.TrimSpace(req.Name),
		Tier:          models.TierFree,
		DailyUsage:    0,
		LastUsageDate: helpers.UsageDate(time.Now(), i.loc),
		LastLogin:     time.Now(),
	}
	userID, err := i.store.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, usersstore.ErrEmailTaken) {
			return authapimodels.JWTResponse{}, err
		}
		logger.WithError(err).Error("ошибка создания пользователя")
		return authapimodels.JWTResponse{}, errors.New("ошибка регистрации пользователя")
	}
	logger.WithField("user_id", userID).Info("пользователь зарегистрирован")
	return i.tokens(userID, rec.Name, rec.Tier)
}

func (i impl) Login(ctx context.Context, email, password string) (authapimodels.JWTResponse, error) {
	email = helpers.NormalizeEmail(email)
	logger := log.WithField("email", email)
	user, err := i.store.FindByEmail(ctx, email)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска пользователя по почте")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		logger.Debug("пользователь с такой почтой не найден")
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		logger.Debug("пользователь не прошел проверку пароля")
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}
	err = i.store.Update(ctx, user.ID, map[string]interface{}{"last_login": time.Now()})
	if err != nil {
		logger.WithError(err).Error("ошибка обновления даты последнего входа")
	}
	return i.tokens(user.ID, user.Name, user.Tier)
}

func (i impl) RefreshToken(ctx context.Context, refreshToken string) (authapimodels.JWTResponse, error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		log.WithError(err).Debug("refresh токен не прошел проверку")
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}
	user, err := i.store.GetByID(ctx, userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		return authapimodels.JWTResponse{}, ErrUserNotFound
	}
	return i.tokens(user.ID, user.Name, user.Tier)
}

func (i impl) Me(ctx context.Context, userID string) (authapimodels.MeView, error) {
	user, err := i.store.GetByID(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("ошибка получения профиля пользователя")
		return authapimodels.MeView{}, errors.New("ошибка получения профиля пользователя")
	}
	if user == nil {
		return authapimodels.MeView{}, ErrUserNotFound
	}
	view := authapimodels.MeView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Tier:      user.Tier,
		TierName:  user.Tier.ToHuman(),
		CreatedAt: user.CreatedAt,
	}
	if i.governor != nil {
		status, err := i.governor.Status(ctx, userID)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("ошибка получения статуса использования")
		} else {
			view.Usage = status
		}
	}
	return view, nil
}

func (i impl) tokens(userID, name string, tier models.UserTier) (authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(userID, name, tier)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	refresh, err := authutils.GetRefreshToken(userID, name)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("ошибка генерации refresh JWT")
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refresh,
	}, nil
}
