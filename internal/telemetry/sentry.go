// Package telemetry reports scraping failures that break every file of a
// batch, such as a changed page layout, to Sentry.
package telemetry

import (
	"sync/atomic"
	"time"

	"github.com/Belphemur/Addic7edSubtitles/internal/config"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

var enabled atomic.Bool

// Init configures Sentry when dsn is set. It reports whether reporting is on.
func Init(dsn, environment string) (bool, error) {
	return initWith(sentry.ClientOptions{Dsn: dsn, Environment: environment})
}

func initWith(options sentry.ClientOptions) (bool, error) {
	if options.Dsn == "" {
		enabled.Store(false)
		return false, nil
	}
	if options.Environment == "" {
		options.Environment = "production"
	}
	if err := sentry.Init(options); err != nil {
		enabled.Store(false)
		return false, err
	}
	enabled.Store(true)

	logger := config.GetLogger()
	logger.Debug().Str("environment", options.Environment).Msg("Sentry reporting enabled")
	return true, nil
}

// Enabled reports whether Init configured a client.
func Enabled() bool {
	return enabled.Load()
}

// ReportStructureError sends a page layout failure with the file and page it happened on.
func ReportStructureError(path, page string, err error) {
	if !enabled.Load() || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("page", page)
		scope.SetTag("kind", "structure")
		scope.SetTag("file", path)
		scope.SetContext("file", sentry.Context{"path": path})
		sentry.CaptureException(err)
	})
}

// Flush waits for queued events to be sent.
func Flush() {
	if enabled.Load() {
		sentry.Flush(flushTimeout)
	}
}
