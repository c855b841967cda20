package cmd

import (
	"fmt"
	"log/slog"
	"novel-reader/config"
	"novel-reader/fetch"
	"os"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:               "novel-reader",
	Short:             "Read and publish novels served as static JSON",
	Long:              "Browse a static novel library, read chapters in the terminal or a browser, and author new novels as static JSON trees",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

type rootArgs struct {
	baseURL string
	envFile string
	debug   bool
}

var (
	rArgs rootArgs

	cfg    *config.Config
	logger *slog.Logger
)

func init() {
	RootCmd.PersistentFlags().StringVar(&rArgs.baseURL, "base-url", "", "root URL of the static site holding novels/")
	RootCmd.PersistentFlags().StringVar(&rArgs.envFile, "env-file", ".env", "optional file of environment variables")
	RootCmd.PersistentFlags().BoolVar(&rArgs.debug, "debug", false, "log debug output, including every request")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(rArgs.envFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("base-url") {
		loaded.BaseURL = rArgs.baseURL
	}
	if cmd.Flags().Changed("debug") {
		loaded.Debug = rArgs.debug
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func newSource() *fetch.Client {
	return fetch.New(cfg.BaseURL, logger)
}
