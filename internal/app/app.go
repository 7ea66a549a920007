// Package app assembles the travel bot: catalog, external clients, the
// conversation dispatcher and the Telegram routes that feed it.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/m3rciful/travelbot/core/bootstrap"
	corecmd "github.com/m3rciful/travelbot/core/cmd"
	coreconfig "github.com/m3rciful/travelbot/core/config"
	"github.com/m3rciful/travelbot/core/logger"
	tg "github.com/m3rciful/travelbot/core/telegram"
	"github.com/m3rciful/travelbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/travelbot/core/telegram/helpers"
	"github.com/m3rciful/travelbot/core/telegram/router"
	"github.com/m3rciful/travelbot/internal/bot"
	"github.com/m3rciful/travelbot/internal/catalog"
	"github.com/m3rciful/travelbot/internal/photo"
	"github.com/m3rciful/travelbot/internal/session"
	"github.com/m3rciful/travelbot/internal/weather"

	tele "gopkg.in/telebot.v4"
)

// App holds the wired bot.
type App struct {
	cfg        *coreconfig.Config
	infra      *bootstrap.Result
	catalog    *catalog.Catalog
	dispatcher *bot.Dispatcher
	registry   *tg.Registry
}

// Deps overrides collaborators, mostly for tests. Nil fields are built from config.
type Deps struct {
	Infra     *bootstrap.Result
	Weather   bot.WeatherProvider
	Photos    bot.PhotoFetcher
	Sessions  session.Store
	Reactions *bot.Reactions
}

// Bootstrap initialises infrastructure and builds the app. It matches the
// signature expected by core/cmd.Run.
func Bootstrap(cfg *coreconfig.Config) (corecmd.TelegramApp, error) {
	infra, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}
	a, err := New(cfg, Deps{Infra: infra})
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	return a, nil
}

// New builds the app from cfg.
func New(cfg *coreconfig.Config, deps Deps) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}
	start := time.Now()
	ctx := context.Background()

	infra := deps.Infra
	if infra == nil {
		infra = &bootstrap.Result{}
	}

	cat, err := loadCatalog(ctx, cfg.Catalog, infra.DB)
	if err != nil {
		return nil, err
	}

	wp := deps.Weather
	if wp == nil {
		wp = weather.NewClient(weather.Options{
			BaseURL: cfg.Weather.BaseURL,
			APIKey:  cfg.Weather.APIKey,
			Lang:    cfg.Weather.Lang,
			Timeout: time.Duration(cfg.Weather.TimeoutSeconds) * time.Second,
		})
	}
	pf := deps.Photos
	if pf == nil {
		pf = photo.NewFetcher(photo.Options{
			Timeout:  time.Duration(cfg.Photos.FetchTimeoutSeconds) * time.Second,
			MaxBytes: cfg.Photos.MaxBytes,
		})
	}

	handlers, err := bot.NewHandlers(bot.Deps{
		Catalog:   cat,
		Sessions:  deps.Sessions,
		Weather:   wp,
		Photos:    pf,
		Reactions: deps.Reactions,
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	a := &App{
		cfg:        cfg,
		infra:      infra,
		catalog:    cat,
		dispatcher: bot.NewDispatcher(bot.DefaultRules(handlers)...),
		registry:   tg.NewRegistry(),
	}
	a.registerCommands()

	logger.Info(ctx, "app", "app.build",
		slog.String("status", "ok"),
		slog.String("source", cfg.Catalog.Source),
		slog.Int("cities", cat.Len()),
		slog.Duration("duration", time.Since(start)),
	)
	return a, nil
}

func (a *App) registerCommands() {
	a.registry.RegisterCommand("/start", commands.Command{Handler: a.handleUpdate, Description: "Начать работу"})
	a.registry.RegisterCommand("/help", commands.Command{Handler: a.handleUpdate, Description: "Список городов"})
	a.registry.RegisterCommand("/bye", commands.Command{Handler: a.handleUpdate, Description: "Попрощаться"})
}

// TelegramRunOptions describes routes, middlewares and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	routes := router.CommandRoutes(a.registry)
	routes = append(routes, router.MessageRoutes(router.MessageOptions{
		OnText:  a.handleUpdate,
		OnPhoto: a.handleUpdate,
	})...)

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(a.notifyPanic),
		Routes:      routes,
		OnStop: func(ctx context.Context, _ tg.Runtime) error {
			if err := a.infra.Close(); err != nil {
				logger.Warn(ctx, "app", "db.close",
					slog.String("status", "fail"),
					slog.String("err", err.Error()),
				)
				return err
			}
			return nil
		},
	}, nil
}

// handleUpdate feeds every command, text and photo update into the dispatcher.
func (a *App) handleUpdate(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	rule, err := a.dispatcher.Dispatch(ctx, messageFrom(c), teleSender{c: c})
	if rule == "" {
		c.Set(router.StatusKey, "skip")
		return err
	}
	c.Set(router.RuleKey, rule)
	return err
}

func (a *App) notifyPanic(c tele.Context, _ any) {
	if c.Chat() == nil {
		return
	}
	ctx := tghelpers.BuildContext(c)
	if err := tghelpers.SendText(ctx, c, bot.UnknownErrorText, nil); err != nil {
		logger.Warn(ctx, "app", "panic.notice",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
	}
}
