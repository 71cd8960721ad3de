// Package cli implements the vsmod command-line interface.
//
// The commands query the VintageStory mod database through a cached
// [vintagestory.CachedClient], print results as tables or JSON, and can run
// a local caching mirror of the API. The CLI is built using cobra, reads its
// configuration through viper and logs via charmbracelet/log.
//
// # Commands
//
//   - mods list/get: browse and inspect mods
//   - tags, versions, authors, comments: reference listings
//   - random: pick a random mod, tag, author, game version or comment
//   - browse: interactive mod picker
//   - serve: local caching mirror
//   - cache, config: manage the persistent cache and the config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes "15:04:05.00"-stamped lines to w at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took, e.g. "Listed 4210 mods (1.234s)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level.
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a
// command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
