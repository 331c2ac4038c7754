package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/lshigami/edugress/config"
	"github.com/lshigami/edugress/internal/cli"
	"github.com/lshigami/edugress/internal/gateway"
	"github.com/lshigami/edugress/internal/logger"
	"github.com/lshigami/edugress/internal/shop"
	"github.com/lshigami/edugress/internal/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	flags := pflag.NewFlagSet("edugress", pflag.ContinueOnError)
	flags.String("config", "", "config file (defaults to .env in the working directory)")
	flags.String("base-url", "", "backend base URL")
	flags.String("store", "", "device store driver: sqlite, redis or memory")
	flags.String("log-level", "", "log level")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, cli.Usage, "\nflags:\n", flags.FlagUsages())
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		os.Exit(1)
	}
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("API_BASE_URL", flags.Lookup("base-url"))
	_ = viper.BindPFlag("STORE_DRIVER", flags.Lookup("store"))
	_ = viper.BindPFlag("LOG_LEVEL", flags.Lookup("log-level"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var app *cli.App
	fxApp := fx.New(
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),

		fx.Provide(
			config.NewConfig,
			NewLogger,
			NewStore,
		),

		// Device storage
		fx.Provide(
			storage.NewSessionRepository,
			storage.NewResumptionStore,
			storage.NewCartStore,
		),

		fx.Provide(
			NewGateway,
			func(gw *gateway.Client, sessions *storage.SessionRepository, carts *storage.CartStore, log zerolog.Logger) *shop.Shop {
				return shop.New(gw, sessions, carts, log)
			},
			func(gw *gateway.Client, sessions *storage.SessionRepository, resume *storage.ResumptionStore, sh *shop.Shop, log zerolog.Logger) *cli.App {
				return cli.New(gw, sessions, resume, sh, log, os.Stdin, os.Stdout)
			},
		),

		fx.Populate(&app),
	)

	if err := fxApp.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to start")
		os.Exit(1)
	}
	runErr := app.Run(ctx, flags.Args())
	if err := fxApp.Stop(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Shutdown failed")
	}
	if runErr != nil {
		log.Debug().Err(runErr).Msg("Command failed")
		os.Exit(1)
	}
}

// NewLogger initialises the global logger and hands out a child for the
// components that take one explicitly.
func NewLogger(cfg *config.Config) zerolog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
	return log.Logger
}

// NewStore opens the device key-value store picked by STORE_DRIVER and closes
// it when the app stops.
func NewStore(lc fx.Lifecycle, cfg *config.Config) (storage.KV, error) {
	var (
		kv  storage.KV
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite", "":
		if dir := filepath.Dir(cfg.Store.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("create store directory: %w", err)
			}
		}
		kv, err = storage.OpenSQLite(cfg.Store.Path)
	case "redis":
		kv, err = storage.OpenRedis(context.Background(), cfg.Store.RedisAddr, cfg.Store.RedisDB)
	case "memory":
		kv = storage.NewMemoryKV()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return kv.Close() },
	})
	return kv, nil
}

func NewGateway(cfg *config.Config, log zerolog.Logger) (*gateway.Client, error) {
	return gateway.New(gateway.Config{
		BaseURL:    cfg.API.BaseURL,
		AuthScheme: cfg.API.AuthScheme,
		Timeout:    cfg.API.Timeout,
	}, log)
}
