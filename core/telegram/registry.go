package telegram

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/m3rciful/travelbot/core/logger"
	"github.com/m3rciful/travelbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

// Registry holds bot commands.
type Registry struct {
	commands map[string]commands.Command
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]commands.Command)}
}

// RegisterCommand adds a new command. Invalid or duplicate registrations are logged and skipped.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) {
	ctx := context.Background()
	if r == nil || name == "" || cmd.Handler == nil || cmd.Description == "" {
		logger.LogEvent(ctx, logger.TWire, slog.LevelWarn, "register.command",
			slog.String("status", "skip"),
			slog.String("handler", name),
			slog.String("cause", "invalid"),
		)
		return
	}
	if name[0] != '/' {
		logger.LogEvent(ctx, logger.TWire, slog.LevelWarn, "register.command",
			slog.String("status", "skip"),
			slog.String("handler", name),
			slog.String("cause", "no_slash_prefix"),
		)
		return
	}
	if _, exists := r.commands[name]; exists {
		logger.LogEvent(ctx, logger.TWire, slog.LevelWarn, "register.command",
			slog.String("status", "skip"),
			slog.String("handler", name),
			slog.String("cause", "duplicate"),
		)
		return
	}
	r.commands[name] = cmd
}

// ListCommands returns commands sorted by name, optionally without hidden ones.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	list := make([]tele.Command, 0, len(r.commands))
	for cmd, meta := range r.commands {
		if visibleOnly && meta.Hidden {
			continue
		}
		list = append(list, tele.Command{Text: strings.TrimPrefix(cmd, "/"), Description: meta.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// LookupCommand searches for a command by name or its aliases and returns the canonical key with metadata if found.
func (r *Registry) LookupCommand(name string) (string, commands.Command, bool) {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	if cmd, ok := r.commands[name]; ok {
		return name, cmd, true
	}
	for key, cmd := range r.commands {
		for _, alias := range cmd.Aliases {
			if alias == name || "/"+alias == name {
				return key, cmd, true
			}
		}
	}
	return "", commands.Command{}, false
}

// Commands returns all registered commands.
func (r *Registry) Commands() map[string]commands.Command {
	return r.commands
}

// CommandSetter is the part of tele.Bot used to publish the command menu.
type CommandSetter interface {
	SetCommands(opts ...interface{}) error
}

// SetupCommands publishes visible commands in the Telegram command menu.
func SetupCommands(bot CommandSetter, reg *Registry) {
	if bot == nil || reg == nil {
		return
	}
	cmds := reg.ListCommands(true)
	if len(cmds) == 0 {
		return
	}
	ctx := context.Background()
	if err := bot.SetCommands(cmds); err != nil {
		logger.LogEvent(ctx, logger.TWire, slog.LevelError, "register.commands",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.LogEvent(ctx, logger.TWire, slog.LevelInfo, "register.commands",
		slog.String("status", "ok"),
		slog.Int("commands", len(cmds)),
	)
}
