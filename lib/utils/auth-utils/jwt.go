package authutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"promptsync-backend/config"
	"promptsync-backend/models"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

func GetToken(userID, name string, tier models.UserTier) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"tier": string(tier),
		"typ":  tokenTypeAccess,
		"exp":  time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTExpireInSec)).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

func GetRefreshToken(userID, name string) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"typ":  tokenTypeRefresh,
		"exp":  time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTRefreshExpireInSec)).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

// ParseRefreshToken проверяет подпись и срок refresh токена и возвращает идентификатор пользователя
func ParseRefreshToken(tokenString string) (userID string, err error) {
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Conf.Auth.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return "", errors.New("токен не является refresh токеном")
	}
	userID, err = claims.GetSubject()
	if err != nil || userID == "" {
		return "", errors.New("в токене не указан пользователь")
	}
	return userID, nil
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

// GetUserID идентификатор вызывающего, пустая строка для анонимного запроса
func GetUserID(ctx *fiber.Ctx) string {
	userID, _ := GetClaims(ctx)["sub"].(string)
	return userID
}

func IsRefreshToken(ctx *fiber.Ctx) bool {
	typ, _ := GetClaims(ctx)["typ"].(string)
	return typ == tokenTypeRefresh
}
