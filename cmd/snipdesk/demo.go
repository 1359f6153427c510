package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/snipdesk/internal/app"
	"github.com/five82/snipdesk/internal/devserver"
)

var (
	demoFailEvery int
	demoLatency   time.Duration
	demoAddr      string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the TUI against a throwaway in-memory snippet server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		srv := devserver.New(devserver.Config{FailEvery: demoFailEvery, Latency: demoLatency})
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Serve(ctx, ln) }()

		runErr := app.Run(ctx, app.Options{
			ConfigPath: cfgFile,
			PrefsPath:  prefsFile,
			BaseURL:    "http://" + ln.Addr().String(),
		})
		cancel()
		if err := <-errCh; err != nil && runErr == nil {
			runErr = fmt.Errorf("demo server: %w", err)
		}
		return runErr
	},
}

var serveDemoCmd = &cobra.Command{
	Use:   "serve-demo",
	Short: "Serve the in-memory snippet server only",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ln, err := net.Listen("tcp", demoAddr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", demoAddr, err)
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		srv := devserver.New(devserver.Config{
			FailEvery: demoFailEvery,
			Latency:   demoLatency,
			Logger:    logger,
		})
		logger.Info("demo server listening", "url", "http://"+ln.Addr().String())
		return srv.Serve(ctx, ln)
	},
}

func init() {
	for _, c := range []*cobra.Command{demoCmd, serveDemoCmd} {
		c.Flags().IntVar(&demoFailEvery, "fail-every", 0, "fail every Nth save or admin request with a 500")
		c.Flags().DurationVar(&demoLatency, "latency", 0, "delay each save or admin request")
		rootCmd.AddCommand(c)
	}
	serveDemoCmd.Flags().StringVar(&demoAddr, "addr", "127.0.0.1:8080", "listen address")
}
