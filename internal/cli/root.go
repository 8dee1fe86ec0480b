// Package cli holds the mnemo command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/mnemo-vocab/internal/app"
	"github.com/heartmarshall/mnemo-vocab/internal/config"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "mnemo",
		Short: "mnemo - vocabulary meanings, etymology and mnemonic stories",
		Long: `mnemo turns a free-form English vocabulary list into a study list where every
word carries a normalized meaning, its etymology and a short Korean mnemonic story.

Configuration is read from --config, CONFIG_PATH or ./config.yaml, then the
environment; a .env file in the working directory is loaded first.

Required environment variables:
  LLM_API_KEY or OPENAI_API_KEY - completion provider API key`,
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (overrides CONFIG_PATH)")

	load := func() (*config.Config, error) {
		if configPath != "" {
			return config.LoadFile(configPath, true)
		}
		return config.Load()
	}

	root.AddCommand(newServeCmd(load), newEnrichCmd(load), newGradeCmd(load))
	return root
}

// configLoader returns the configuration selected by the root flags.
type configLoader func() (*config.Config, error)

// Execute runs the root command.
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the application for one-shot
// commands. Logs go to stderr so stdout stays machine-readable.
func bootstrap(load configLoader) (*app.App, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.Log)
	a, err := app.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("bootstrapped", slog.String("version", app.BuildVersion()))
	return a, nil
}
