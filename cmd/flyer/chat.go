package main

import (
	"os"
	"os/signal"

	"github.com/StackOverflowed512/flyer-agent/internal/transport/cli"
	"github.com/StackOverflowed512/flyer-agent/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:          "chat",
	Short:        "Chat with the assistant in the terminal",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		c, err := buildCore(ctx, false)
		if err != nil {
			return err
		}
		defer srv.Shutdown(ctx, c.services)

		rl, err := cli.NewReadLine(c.orchestrator, c.appCfg.GetRuntimePath())
		if err != nil {
			return err
		}
		defer rl.Shutdown(ctx)

		return rl.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
