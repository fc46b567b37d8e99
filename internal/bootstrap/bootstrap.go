// Copyright 2025 Aiboard Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron"
	"go.uber.org/zap"

	"github.com/impactlab/aiboard/internal/dashboard/conf"
	"github.com/impactlab/aiboard/internal/dashboard/event"
	"github.com/impactlab/aiboard/internal/dashboard/repo"
	"github.com/impactlab/aiboard/internal/dashboard/router"
	"github.com/impactlab/aiboard/internal/dashboard/service"
	"github.com/impactlab/aiboard/pkg/cache"
	"github.com/impactlab/aiboard/pkg/database"
	"github.com/impactlab/aiboard/pkg/log"
	"github.com/impactlab/aiboard/pkg/storage"
)

type App struct {
	HttpApp *fiber.App
	Logger  *zap.Logger
	Bus     *event.Bus
	Cron    *cron.Cron
	AppConf conf.AppConfig
}

// Bootstrap builds the application from the config file, returning the
// app and a cleanup that releases its resources.
func Bootstrap(configFile string) (*App, func(), error) {
	appConf := conf.NewConf(configFile)

	logger, err := log.NewLog(&appConf.Log)
	if err != nil {
		return nil, nil, err
	}

	redisClient, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("init redis failed: %w", err)
	}
	dbClient, err := database.NewDatabase(appConf.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("init database failed: %w", err)
	}

	db := database.NewGormDB(dbClient)
	redisCache := cache.NewRedisCache(redisClient)

	repos := repo.NewRepositories(db, redisCache)
	bus := event.NewBus(redisClient)

	projects := service.NewProjectService(repos.Project, bus)
	stats := service.NewStatsService(repos.Project, appConf.Stats.CacheTTL)
	imports := service.NewImportService(projects)
	exports := service.NewExportService(repos.Project)

	// import archive storage is optional
	var archive storage.Provider
	if appConf.Storage.Enabled() {
		minioStorage, err := storage.NewMinio(appConf.Storage)
		if err != nil {
			logger.Sugar().Warnw("object storage unavailable, import archival disabled", "error", err)
		} else {
			archive = minioStorage
		}
	}

	rt := router.NewRouter(&appConf.Http, redisClient, projects, stats, imports, exports, bus, archive)
	httpApp := rt.Router()

	// keep the team stats cache warm so dashboards load from redis
	statsCron := cron.New()
	if err := statsCron.AddFunc(appConf.Stats.WarmSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := stats.WarmCache(ctx); err != nil {
			log.Warnw("team stats cache warm failed", "error", err)
		}
	}); err != nil {
		return nil, nil, fmt.Errorf("schedule stats warm job failed: %w", err)
	}
	statsCron.Start()

	cleanup := func() {
		statsCron.Stop()
		bus.Close()
		if err := redisClient.Close(); err != nil {
			logger.Sugar().Errorf("redis close error: %v", err)
		}
		_ = logger.Sync()
	}

	app := &App{
		HttpApp: httpApp,
		Logger:  logger,
		Bus:     bus,
		Cron:    statsCron,
		AppConf: appConf,
	}
	return app, cleanup, nil
}

// Run starts the app and waits for an exit signal, then gracefully
// shuts down.
func Run(app *App, cleanup func()) {
	logger := app.Logger
	appConf := app.AppConf

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		addr := fmt.Sprintf("%s:%d", appConf.Http.Host, appConf.Http.Port)
		logger.Sugar().Infow("HTTP listener started", "address", addr)

		var err error
		if appConf.Http.TLS.CertFile != "" && appConf.Http.TLS.KeyFile != "" {
			err = app.HttpApp.ListenTLS(addr, appConf.Http.TLS.CertFile, appConf.Http.TLS.KeyFile)
		} else {
			err = app.HttpApp.Listen(addr)
		}
		if err != nil {
			logger.Sugar().Errorw("HTTP listener failed", "address", addr, "error", err)
		}
	}()

	sig := <-quit
	logger.Sugar().Infof("received signal: %v, shutting down gracefully...", sig)

	shutdownTimeout := time.Duration(appConf.Http.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Sugar().Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	cleanup()

	logger.Info("server shutdown complete")
}
