package main

import (
	"fmt"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	"github.com/spf13/cobra"
)

var (
	sendEmail   string
	sendProduct string
)

var sendCmd = &cobra.Command{
	Use:          "send-flyer",
	Short:        "Email a product flyer without a conversation",
	Example:      "  flyer send-flyer --email jane@example.com --product ppe",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		cfg, err := loadAppConfig(ctx)
		if err != nil {
			return err
		}

		catalog := core.DefaultCatalog()
		product, ok := catalog.Resolve(sendProduct)
		if !ok {
			return fmt.Errorf("unknown product %q", sendProduct)
		}

		sender, err := initFlyerSender(ctx, cfg, catalog)
		if err != nil {
			return err
		}

		if !sender.SendFlyer(ctx, sendEmail, product.ID) {
			return fmt.Errorf("failed to send the %s flyer to %s", product.ID, sendEmail)
		}

		log.FromCtx(ctx).Info().Str("email", sendEmail).Str("product", string(product.ID)).Msg("flyer sent")
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendEmail, "email", "", "recipient address")
	sendCmd.Flags().StringVar(&sendProduct, "product", string(core.ProductEmailResponsePrediction), "product id or alias")
	_ = sendCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(sendCmd)
}
