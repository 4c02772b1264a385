package commands

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"zendesk-analytics/internal/mcp"
)

var (
	reportEmail string
	reportDays  int
	openReport  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the ticket analysis workbook for one requester",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(cfg, ticketService, reportStore, deliverer, Version)
		rep, err := server.GenerateTicketReport(cmd.Context(), reportEmail, reportDays)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), rep.Summary)
		fmt.Fprintf(cmd.OutOrStdout(), "\nWorkbook written to %s\n", rep.Path)

		if openReport {
			if err := browser.OpenFile(rep.Path); err != nil {
				log.Warn().Err(err).Str("path", rep.Path).Msg("Failed to open workbook")
			}
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportEmail, "email", "", "requester e-mail address")
	reportCmd.Flags().IntVar(&reportDays, "days", mcp.DefaultDays, "days of history to include (0 for all)")
	reportCmd.Flags().BoolVar(&openReport, "open", false, "open the workbook when done")
	_ = reportCmd.MarkFlagRequired("email")
}
