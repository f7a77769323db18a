package initializers

import (
	"context"
	"time"

	"promptsync-backend/config"
	"promptsync-backend/db"
	"promptsync-backend/fiberlog"
	ailogretentionworker "promptsync-backend/lib/ai/ai-log-retention-worker"
	ailogstore "promptsync-backend/lib/ai/ai-log-store"
	"promptsync-backend/lib/analyze"
	"promptsync-backend/lib/auth"
	"promptsync-backend/lib/enhance"
	xlsexport "promptsync-backend/lib/export/xls"
	filestorage "promptsync-backend/lib/file-storage"
	filesdbstorage "promptsync-backend/lib/file-storage/storage"
	"promptsync-backend/lib/history"
	historystore "promptsync-backend/lib/history/store"
	"promptsync-backend/lib/preprocess"
	"promptsync-backend/lib/questions"
	"promptsync-backend/lib/superprompt"
	"promptsync-backend/lib/usage"
	usagestore "promptsync-backend/lib/usage/store"
	usagetrackingstore "promptsync-backend/lib/usage/tracking-store"
	usersstore "promptsync-backend/lib/users/store"
	initchecker "promptsync-backend/lib/utils/init-checker"
	"promptsync-backend/lib/waitlist"
	waitliststore "promptsync-backend/lib/waitlist/store"
)

var LoggerConfig *fiberlog.Config

// Services провайдеры, собранные один раз при старте
type Services struct {
	Governor     usage.Provider
	Orchestrator superprompt.Provider
	Analyzer     analyze.Provider
	History      history.Provider
	Xls          xlsexport.Provider
	Files        filestorage.Provider
	Auth         auth.Provider
	Waitlist     waitlist.Provider
	AiLog        ailogstore.Provider
}

func InitAllServices(ctx context.Context) *Services {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()

	loc := config.Conf.Location()
	aiLog := ailogstore.NewInstance(db.DB)
	ai := InitAI(ctx, aiLog)
	s3 := InitS3(ctx)
	mail := InitSmtp()

	governor := usage.NewHandler(usagestore.NewInstance(db.DB), usagetrackingstore.NewInstance(db.DB), usage.Config{
		Limits: usage.Limits{
			Free:    config.Conf.Quota.FreeDailyLimit,
			Premium: config.Conf.Quota.PremiumDailyLimit,
		},
		Location: loc,
	})
	historyHandler := history.NewHandler(historystore.NewInstance(db.DB), history.Limits{
		Default: config.Conf.History.DefaultLimit,
		Max:     config.Conf.History.MaxLimit,
	})
	var files filestorage.Provider
	if s3 != nil {
		files = filestorage.NewHandler(s3, filesdbstorage.NewInstance(db.DB), time.Duration(config.Conf.S3.LinkExpireMin)*time.Minute)
	} else {
		files = filestorage.NewHandler(nil, nil, 0)
	}

	services := &Services{
		Governor: governor,
		Orchestrator: superprompt.NewHandler(
			preprocess.NewHandler(ai),
			enhance.NewHandler(ai),
			questions.NewHandler(ai),
			governor,
			historyHandler,
		),
		Analyzer: analyze.NewHandler(ai),
		History:  historyHandler,
		Xls:      xlsexport.NewHandler(),
		Files:    files,
		Auth:     auth.NewHandler(usersstore.NewInstance(db.DB), governor, loc),
		Waitlist: waitlist.NewHandler(waitliststore.NewInstance(db.DB), mail),
		AiLog:    aiLog,
	}
	initchecker.CheckInit(
		"db", db.DB,
		"governor", services.Governor,
		"orchestrator", services.Orchestrator,
		"history", services.History,
		"files", services.Files,
		"auth", services.Auth,
		"waitlist", services.Waitlist,
	)
	go initWorkers(ctx, services)
	return services
}

func initWorkers(ctx context.Context, services *Services) {
	if !makeTimeGap(ctx) {
		return
	}
	// Задача очистки журнала вызовов ИИ
	ailogretentionworker.StartWorker(ctx, services.AiLog, config.Conf.AI.LogRetentionDays)
}

func makeTimeGap(ctx context.Context) (canRun bool) {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
