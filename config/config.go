package config

import (
	"time"

	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr   string `default:"" env:"APP_HOST"`
		Port         int    `default:"8080"  env:"APP_PORT"`
		BodyLimitKb  int    `default:"256" env:"APP_BODY_LIMIT_KB"`
		ErrNotifyURL string `default:"" env:"APP_ERR_NOTIFY_URL"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"promptsync" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret             string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec        int64  `default:"3600" env:"JWT_EXPIRE_IN_SEC"`
		JWTRefreshExpireInSec int64  `default:"2592000" env:"JWT_REFRESH_EXPIRE_IN_SEC"`
	}
	AI struct {
		// gemini | yandexgpt | ollama
		Provider            string  `default:"gemini" env:"AI_PROVIDER"`
		ClassifyTimeoutSec  int     `default:"15" env:"AI_CLASSIFY_TIMEOUT_SEC"`
		EnhanceTimeoutSec   int     `default:"45" env:"AI_ENHANCE_TIMEOUT_SEC"`
		QuestionsTimeoutSec int     `default:"20" env:"AI_QUESTIONS_TIMEOUT_SEC"`
		RateLimitPerSec     float64 `default:"5" env:"AI_RATE_LIMIT_PER_SEC"`
		RateLimitBurst      int     `default:"10" env:"AI_RATE_LIMIT_BURST"`
		LogRetentionDays    int     `default:"30" env:"AI_LOG_RETENTION_DAYS"`
		Gemini              struct {
			APIKey        string `default:"" env:"GEMINI_API_KEY"`
			StandardModel string `default:"gemini-1.5-flash" env:"GEMINI_STANDARD_MODEL"`
			AdvancedModel string `default:"gemini-2.0-flash-exp" env:"GEMINI_ADVANCED_MODEL"`
		}
		YandexGPT struct {
			IAMToken  string `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
			CatalogID string `default:"" env:"YANDEX_GPT_CATALOG_ID"`
		}
		Ollama struct {
			OllamaURL     string `default:"" env:"OLLAMA_URL"`
			StandardModel string `default:"" env:"OLLAMA_STANDARD_MODEL"`
			AdvancedModel string `default:"" env:"OLLAMA_ADVANCED_MODEL"`
		}
	}
	Quota struct {
		FreeDailyLimit    int    `default:"50" env:"QUOTA_FREE_DAILY_LIMIT"`
		PremiumDailyLimit int    `default:"999" env:"QUOTA_PREMIUM_DAILY_LIMIT"`
		TimeZone          string `default:"UTC" env:"QUOTA_TIME_ZONE"`
	}
	History struct {
		DefaultLimit int `default:"20" env:"HISTORY_DEFAULT_LIMIT"`
		MaxLimit     int `default:"100" env:"HISTORY_MAX_LIMIT"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"promptsync-exports" env:"S3_BUCKET_NAME"`
		LinkExpireMin   int    `default:"60" env:"S3_LINK_EXPIRE_MIN"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Waitlist struct {
		SenderName string `default:"PromptSync" env:"WAITLIST_SENDER_NAME"`
	}
}

func (c *Configuration) Location() *time.Location {
	loc, err := time.LoadLocation(c.Quota.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
