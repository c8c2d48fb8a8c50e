package main

import (
	"path/filepath"

	"github.com/StackOverflowed512/flyer-agent/internal/config"
	"github.com/StackOverflowed512/flyer-agent/internal/service/installer"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:          "install",
	Short:        "Write the runtime configuration interactively",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)

		runtimePath := config.GetRuntimePath()
		paths := installer.Paths{
			Runtime: runtimePath,
			Flyers:  filepath.Join(runtimePath, "flyers"),
		}

		if _, err := installer.RunWizard(paths); err != nil {
			return err
		}

		logger.Info().Str("path", runtimePath).Msg("initialized runtime directory")
		logger.Info().Msg("Installation complete! You can now run 'flyer serve'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
