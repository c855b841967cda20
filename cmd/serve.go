package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"novel-reader/server"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the library, reader and publisher pages over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

type serveArgs struct {
	addr      string
	staticDir string
	sanitize  bool
}

var sArgs serveArgs

func init() {
	serveCmd.Flags().StringVar(&sArgs.addr, "addr", "", "listen address, overrides NOVEL_READER_ADDR")
	serveCmd.Flags().StringVar(&sArgs.staticDir, "static-dir", "", "serve this directory's novels/ tree under /novels/")
	serveCmd.Flags().BoolVar(&sArgs.sanitize, "sanitize", false, "sanitize chapter markup before rendering it")
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("addr") {
		cfg.Addr = sArgs.addr
	}
	if cmd.Flags().Changed("static-dir") {
		cfg.StaticDir = sArgs.staticDir
	}
	if cmd.Flags().Changed("sanitize") {
		cfg.Sanitize = sArgs.sanitize
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, newSource(), logger)
	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}
