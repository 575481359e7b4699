// SPDX-License-Identifier: Apache-2.0

// Command logchunks splits a Robot Framework output.xml into one standalone
// document and HTML log per test case, and reads those chunks back into
// structured records.
//
// Usage:
//
//	logchunks split output.xml [output_dir]
//	logchunks read chunked_results --format yaml
//	logchunks extract doc.txt
//	logchunks serve
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/logchunks/logchunks/internal/config"
)

const version = "0.3.0"

// app carries the flags and state shared by all subcommands.
type app struct {
	configPath    string
	debug         bool
	jsonLogs      bool
	prefixPattern string
	rebot         string
	renderTimeout time.Duration

	cfg    config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "logchunks",
		Short: "Split Robot Framework results into per-test chunks",
		Long: `logchunks decomposes an aggregated Robot Framework output.xml into one
self-contained XML document per test case, renders an HTML log for each with
rebot, and reads the chunks back into records carrying steps, requirements and
a location-independent checksum.

Configuration is read from .logchunks.yaml when present; flags override it.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath, "configuration file")
	flags.BoolVar(&a.debug, "debug", true, "log progress for every test case")
	flags.BoolVar(&a.jsonLogs, "json-logs", false, "emit logs as JSON")
	flags.StringVar(&a.prefixPattern, "prefix-pattern", "", "regular expression with one capture group used to tag chunk filenames")
	flags.StringVar(&a.rebot, "rebot", "", "rebot executable (default from config, then \"rebot\")")
	flags.DurationVar(&a.renderTimeout, "render-timeout", 0, "timeout for one rebot run, 0 for none")

	root.AddCommand(a.splitCmd(), a.readCmd(), a.extractCmd(), a.serveCmd())
	return root
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	cfg, err := config.Load(a.configPath, !flags.Changed("config"))
	if err != nil {
		return err
	}
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if flags.Changed("prefix-pattern") {
		cfg.PrefixPattern = a.prefixPattern
	}
	if flags.Changed("rebot") {
		cfg.Renderer.Binary = a.rebot
	}
	if flags.Changed("render-timeout") {
		cfg.Renderer.Timeout = a.renderTimeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	if a.jsonLogs {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	a.logger = zap.New(zapcore.NewCore(enc, zapcore.AddSync(cmd.ErrOrStderr()), level))
	return nil
}

func (a *app) printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
