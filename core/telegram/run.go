package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	coreconfig "github.com/m3rciful/travelbot/core/config"
	"github.com/m3rciful/travelbot/core/logger"
	"github.com/m3rciful/travelbot/core/netutil"
	tghelpers "github.com/m3rciful/travelbot/core/telegram/helpers"
	tgsender "github.com/m3rciful/travelbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

const (
	telegramAPIRetries = 3
	// pollSlack is added to the long-poll timeout for the HTTP client deadline.
	pollSlack = 20 * time.Second
)

// Middleware describes a global bot middleware to be registered via bot.Use.
type Middleware struct {
	Name string
	Use  func(next tele.HandlerFunc) tele.HandlerFunc
}

// Route declares a single bot handler bound to an arbitrary endpoint.
// Endpoint values are passed directly to tele.Bot.Handle.
type Route struct {
	Endpoint any
	Handler  tele.HandlerFunc
}

// RunOptions controls the behaviour of RunTelegram.
type RunOptions struct {
	Config   *coreconfig.Config
	Registry *Registry

	DispatcherOptions tgsender.Options
	Dispatcher        *tgsender.Dispatcher

	Middlewares []Middleware
	Routes      []Route

	DisableWebhookCleanup bool

	OnStart func(ctx context.Context, rt Runtime) error
	OnStop  func(ctx context.Context, rt Runtime) error
}

// Runtime exposes runtime components to lifecycle hooks.
type Runtime struct {
	Dispatcher *tgsender.Dispatcher
	Registry   *Registry
}

// RunTelegram composes and runs a Telegram bot until the provided context is done.
func RunTelegram(ctx context.Context, opts RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Config == nil {
		return fmt.Errorf("telegram: nil config provided")
	}

	cfg := opts.Config
	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry()
	}

	poller := BuildPoller(PollerOptions{
		RunMode:                cfg.Telegram.RunMode,
		LongPollTimeoutSeconds: cfg.Telegram.LongPollTimeoutSeconds,
		Webhook: WebhookOptions{
			Listen: cfg.Webhook.Listen,
			Port:   cfg.Webhook.Port,
			URL:    cfg.Webhook.URL,
		},
	})

	client := netutil.BuildHTTPClient(netutil.ClientOptions{
		Timeout: longPollTimeout(cfg.Telegram.LongPollTimeoutSeconds) + pollSlack,
		Retries: telegramAPIRetries,
	})

	buildStart := time.Now()
	bot, err := tele.NewBot(tele.Settings{
		Token:   cfg.Telegram.Token,
		Poller:  poller,
		Client:  client,
		OnError: logUpdateError,
	})
	if err != nil {
		return fmt.Errorf("telegram: bot initialization failed: %w", err)
	}
	buildTook := time.Since(buildStart)

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispOpts := opts.DispatcherOptions
		if dispOpts.Workers <= 0 {
			dispOpts.Workers = cfg.Telegram.SenderWorkers
		}
		dispatcher = tgsender.NewDispatcher(dispOpts)
	}
	tghelpers.SetDispatcher(dispatcher)
	defer tghelpers.SetDispatcher(nil)

	rt := Runtime{Dispatcher: dispatcher, Registry: reg}

	switch p := poller.(type) {
	case *tele.Webhook:
		logger.LogEvent(ctx, logger.TG, slog.LevelInfo, "tg.mode",
			slog.String("mode", coreconfig.RunModeWebhook),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
			slog.Duration("duration", buildTook),
		)
	default:
		logger.LogEvent(ctx, logger.TG, slog.LevelInfo, "tg.mode",
			slog.String("mode", coreconfig.RunModeLongpoll),
			slog.Int("timeout_seconds", int(longPollTimeout(cfg.Telegram.LongPollTimeoutSeconds)/time.Second)),
			slog.Duration("duration", buildTook),
		)
		if !opts.DisableWebhookCleanup {
			if err := deleteWebhook(ctx, client, cfg.Telegram.Token, false); err != nil {
				logger.LogEvent(ctx, logger.TG, slog.LevelWarn, "tg.delete_webhook",
					slog.String("status", "fail"),
					slog.String("err", tgsender.SanitizeError(err)),
				)
			} else {
				logger.LogEvent(ctx, logger.TG, slog.LevelDebug, "tg.delete_webhook", slog.String("status", "ok"))
			}
		}
	}

	for _, mw := range opts.Middlewares {
		if mw.Use != nil {
			bot.Use(mw.Use)
		}
	}
	for _, route := range opts.Routes {
		if route.Endpoint != nil && route.Handler != nil {
			bot.Handle(route.Endpoint, route.Handler)
		}
	}

	SetupCommands(bot, reg)

	if opts.OnStart != nil {
		if err := opts.OnStart(ctx, rt); err != nil {
			dispatcher.Close()
			return err
		}
	}

	runDone := make(chan struct{})
	go func() {
		bot.Start()
		close(runDone)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		bot.Stop()
		<-runDone
		runErr = ctx.Err()
	case <-runDone:
	}

	var stopErr error
	if opts.OnStop != nil {
		stopErr = opts.OnStop(context.WithoutCancel(ctx), rt)
	}

	dispatcher.Close()

	if stopErr != nil {
		return stopErr
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// logUpdateError receives errors returned by handlers after their summary was logged.
func logUpdateError(err error, c tele.Context) {
	ctx := context.Background()
	if c != nil {
		ctx = tghelpers.BuildContext(c)
	}
	logger.LogEvent(ctx, logger.TG, slog.LevelDebug, "update.error",
		slog.String("status", "fail"),
		slog.String("err", tgsender.SanitizeError(err)),
		slog.String("err_kind", tgsender.ClassifyError(err)),
	)
}

func deleteWebhook(ctx context.Context, client *http.Client, token string, dropPending bool) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("empty token")
	}
	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/deleteWebhook", token)
	body := fmt.Sprintf("drop_pending_updates=%t", dropPending)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("deleteWebhook status: %s", resp.Status)
	}
	return nil
}
