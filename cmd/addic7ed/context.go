package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Belphemur/Addic7edSubtitles/internal/catalog"
	"github.com/Belphemur/Addic7edSubtitles/internal/client"
	"github.com/Belphemur/Addic7edSubtitles/internal/config"
	"github.com/Belphemur/Addic7edSubtitles/internal/telemetry"
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":   "log_level",
	"language":    "language",
	"concurrency": "concurrency",
}

type commandContext struct {
	configFlag *string
	config     *config.Config
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// load reads the configuration with the flags of cmd layered on top.
func (c *commandContext) load(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return nil, bindErr
	}

	var path string
	if c.configFlag != nil {
		path = strings.TrimSpace(*c.configFlag)
	}
	cfg, err := config.Init(v, path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if _, err := telemetry.Init(cfg.Sentry.DSN, cfg.Sentry.Environment); err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Msg("Sentry disabled: invalid configuration")
	}

	c.config = cfg
	return cfg, nil
}

// withNavigator runs fn with a navigator over a fresh fetcher and closes the
// fetcher once fn returns.
func (c *commandContext) withNavigator(fn func(client.Fetcher, *catalog.Navigator) error) error {
	fetcher, err := client.NewFetcher(c.config)
	if err != nil {
		return err
	}
	defer fetcher.Close()
	return fn(fetcher, catalog.NewNavigator(fetcher))
}
