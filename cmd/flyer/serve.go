package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	"github.com/StackOverflowed512/flyer-agent/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Serve the chat page and API (and the Telegram bot when enabled)",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting flyer agent")

		c, err := buildCore(ctx, true)
		if err != nil {
			return err
		}

		transports, err := initTransports(ctx, c)
		if err != nil {
			srv.Shutdown(ctx, c.services)
			return err
		}
		services := append(c.services, transports...)

		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)

		logger.Info().Msg("flyer agent has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
