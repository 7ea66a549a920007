package cmd

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"

	coreconfig "github.com/m3rciful/travelbot/core/config"
	coretelegram "github.com/m3rciful/travelbot/core/telegram"
	"github.com/stretchr/testify/require"
)

type stubApp struct {
	opts coretelegram.RunOptions
	err  error
}

func (s stubApp) TelegramRunOptions() (coretelegram.RunOptions, error) { return s.opts, s.err }

func baseOptions(t *testing.T) (Options, *[]string) {
	t.Helper()
	calls := &[]string{}
	cfg := &coreconfig.Config{Telegram: coreconfig.TelegramConfig{Token: "1:x"}}
	return Options{
		ConfigEnvVar:      "TRAVELBOT_TEST_CONFIG",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (*coreconfig.Config, error) {
			*calls = append(*calls, "load:"+path)
			return cfg, nil
		},
		Bootstrap: func(got *coreconfig.Config) (TelegramApp, error) {
			require.Same(t, cfg, got)
			*calls = append(*calls, "bootstrap")
			return stubApp{opts: coretelegram.RunOptions{
				OnStart: func(context.Context, coretelegram.Runtime) error {
					*calls = append(*calls, "app.start")
					return nil
				},
				OnStop: func(context.Context, coretelegram.Runtime) error {
					*calls = append(*calls, "app.stop")
					return nil
				},
			}}, nil
		},
		ShutdownLogger: func() error {
			*calls = append(*calls, "logger.shutdown")
			return nil
		},
		Signals: []os.Signal{syscall.SIGUSR1},
	}, calls
}

func TestRunWiresLifecycleHooks(t *testing.T) {
	opts, calls := baseOptions(t)
	opts.RunTelegram = func(ctx context.Context, ro coretelegram.RunOptions) error {
		require.NotNil(t, ro.Config)
		require.NoError(t, ro.OnStart(ctx, coretelegram.Runtime{}))
		require.NoError(t, ro.OnStop(ctx, coretelegram.Runtime{}))
		*calls = append(*calls, "run")
		return nil
	}

	require.NoError(t, Run(opts))
	require.Equal(t, []string{"load:config.yaml", "bootstrap", "app.start", "app.stop", "run", "logger.shutdown"}, *calls)
}

func TestRunPrefersEnvConfigPath(t *testing.T) {
	t.Setenv("TRAVELBOT_TEST_CONFIG", "/etc/travelbot.yaml")
	opts, calls := baseOptions(t)
	opts.RunTelegram = func(context.Context, coretelegram.RunOptions) error { return nil }

	require.NoError(t, Run(opts))
	require.Equal(t, "load:/etc/travelbot.yaml", (*calls)[0])
}

func TestRunPropagatesFailures(t *testing.T) {
	opts, _ := baseOptions(t)
	opts.LoadConfig = func(string) (*coreconfig.Config, error) { return nil, errors.New("bad yaml") }
	err := Run(opts)
	require.ErrorContains(t, err, "failed to load config")

	opts, calls := baseOptions(t)
	opts.Bootstrap = func(*coreconfig.Config) (TelegramApp, error) { return nil, errors.New("db down") }
	err = Run(opts)
	require.ErrorContains(t, err, "bootstrap failed")
	require.Contains(t, *calls, "logger.shutdown")

	opts, _ = baseOptions(t)
	opts.Bootstrap = func(*coreconfig.Config) (TelegramApp, error) {
		return stubApp{err: errors.New("no routes")}, nil
	}
	require.ErrorContains(t, Run(opts), "options build failed")
}

func TestRunRequiresBootstrap(t *testing.T) {
	require.Error(t, Run(Options{}))
}
