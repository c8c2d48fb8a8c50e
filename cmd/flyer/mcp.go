package main

import (
	"os"
	"os/signal"

	"github.com/StackOverflowed512/flyer-agent/internal/transport/mcp"
	"github.com/StackOverflowed512/flyer-agent/pkg/srv"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:          "mcp",
	Short:        "Expose chat, extraction and flyer delivery as MCP tools over stdio",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// stdout carries the protocol.
		var flushLog func()
		ctx, flushLog = setupLoggerTo(ctx, os.Stderr)
		defer flushLog()

		c, err := buildCore(ctx, false)
		if err != nil {
			return err
		}
		defer srv.Shutdown(ctx, c.services)

		server := mcp.NewServer(c.orchestrator, c.extractor, c.sender, c.catalog)
		return server.Listen(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
