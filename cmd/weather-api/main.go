package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkweather/config"
	"checkweather/internal/cache"
	v1 "checkweather/internal/controllers/http/v1"
	"checkweather/internal/repositories"
	"checkweather/internal/services/weather"
	"checkweather/pkg/httpserver"
	"checkweather/pkg/logger"
	"checkweather/pkg/observe"
)

// @title CheckWeather API
// @version 1.0.0
// @description Current conditions and 7-day forecasts by city or coordinates.

// @contact.name CheckWeather Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Weather lookup operations
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sentryHook := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.IsDevelopment(), cnf.Sentry.DSN)

	l, err := logger.New(logger.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
		Hooks:   []io.Writer{sentryHook},
	}, os.Stdout)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	repo, err := repositories.InitWeatherRepository(cnf, l)
	if err != nil {
		l.Fatal("cannot init weather provider", map[string]any{"err": err.Error()})
	}

	var snapshots weather.Cache
	if cnf.Redis.URL != "" {
		rdb, err := cache.Connect(ctx, cnf.Redis.URL, l)
		if err != nil {
			l.Error(err, map[string]any{"redis_url": cnf.Redis.URL})
			l.Warning("continuing without snapshot cache")
		} else {
			defer rdb.Close()
			snapshots = cache.NewSnapshotCache(rdb, cnf.Weather.CacheTTL)
		}
	}

	service := weather.NewWeatherService(repo, snapshots, l)

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		StackTrace:   !cnf.IsProduction(),
		ReadTimeout:  time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cnf.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cnf.Server.IdleTimeout) * time.Second,
	}, l)

	v1.NewRouter(
		app,
		service,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":     cnf.Server.Port,
		"provider": repo.Name(),
		"cache":    snapshots != nil,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		sentryHook.Flush()
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
