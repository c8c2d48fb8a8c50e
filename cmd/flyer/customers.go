package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/internal/service/ui"
	"github.com/StackOverflowed512/flyer-agent/pkg/srv"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var customersLimit int

var customersCmd = &cobra.Command{
	Use:          "customers",
	Short:        "List captured customer records, newest first",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		cfg, err := loadAppConfig(ctx)
		if err != nil {
			return err
		}

		store, _, services, err := initStorage(ctx, cfg, false)
		if err != nil {
			return err
		}
		defer srv.Shutdown(ctx, services)

		records, err := store.ListCustomers(ctx, customersLimit)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No customers captured yet.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderCustomers(records))
		return nil
	},
}

func renderCustomers(records []core.StoredCustomer) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "CREATED", "NAME", "LOCATION", "EMAIL", "WHATSAPP", "PRODUCT", "PREFERENCE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return ui.HeaderStyle
			}
			return ui.CellStyle
		})

	for _, r := range records {
		t.Row(
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Local().Format(time.DateTime),
			r.Name,
			r.Location,
			r.Email,
			r.WhatsApp,
			r.SuggestedProduct,
			r.FlyerPreference,
		)
	}
	return t.Render()
}

func init() {
	customersCmd.Flags().IntVarP(&customersLimit, "limit", "n", 20, "maximum number of records")
	rootCmd.AddCommand(customersCmd)
}
