package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fekuna/ventstock/config"
	"github.com/fekuna/ventstock/internal/inventory"
	"github.com/fekuna/ventstock/pkg/database/sqlite"
	"github.com/fekuna/ventstock/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.App.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the inventory database
	db, err := sqlite.NewSQLite(&sqlite.Config{
		Path:          cfg.SQLite.Path,
		BusyTimeoutMS: cfg.SQLite.BusyTimeoutMS,
		MaxOpenConns:  cfg.SQLite.MaxOpenConns,
	})
	if err != nil {
		appLogger.Fatal("Could not open database", zap.String("path", cfg.SQLite.Path), zap.Error(err))
	}
	defer db.Close()
	appLogger.Debug("Opened SQLite database", zap.String("path", cfg.SQLite.Path))

	// 4. Migrate and wire the catalogs
	store, err := inventory.Open(ctx, db, appLogger)
	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(exitCode(err))
	}

	app := &cli{
		store:  store,
		cfg:    cfg,
		logger: appLogger,
		out:    os.Stdout,
	}
	if err := app.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		appLogger.Sync()
		db.Close()
		os.Exit(exitCode(err))
	}
}
