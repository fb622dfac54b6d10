package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cppla/aiblog/config"
	"github.com/cppla/aiblog/routes"
	"github.com/cppla/aiblog/services"
	"github.com/cppla/aiblog/storage/gormstore"
	"github.com/cppla/aiblog/utils"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger early
	log, err := utils.InitLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		utils.Sugar.Fatalf("open database: %v", err)
	}
	store, err := gormstore.New(db)
	if err != nil {
		utils.Sugar.Fatalf("migrate posts: %v", err)
	}

	accessLog, err := utils.NewRollingFileLogger(utils.RollingFile{
		Path:       cfg.AccessLogPath,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	}, cfg.LogLevel)
	if err != nil {
		// fall back to the application logger
		log.Warn("access log unavailable", zap.Error(err))
		accessLog = log
	}

	r, err := routes.SetupRouter(routes.Deps{
		Config:    cfg,
		DB:        db,
		Posts:     services.NewPostService(store, services.WithLogger(log)),
		Views:     services.NewViewCounter(utils.NewRedis(cfg)),
		Log:       log,
		AccessLog: accessLog,
	})
	if err != nil {
		utils.Sugar.Fatalf("setup router: %v", err)
	}

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r, log); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
