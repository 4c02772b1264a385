package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"zendesk-analytics/internal/config"
	"zendesk-analytics/internal/logging"
	"zendesk-analytics/internal/mcp"
	"zendesk-analytics/internal/report"
	"zendesk-analytics/internal/tickets"
	"zendesk-analytics/internal/zendesk"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	ticketService *tickets.Service
	reportStore   *report.Store
	deliverer     report.Deliverer
)

var rootCmd = &cobra.Command{
	Use:   "zendesk-analytics",
	Short: "Zendesk ticket analytics over MCP and HTTP",
	Long: `Fetches a requester's Zendesk tickets and turns them into frequency, response time,
brand and country reports. Runs as an MCP stdio server by default; use "serve" for the HTTP API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		ticketService = tickets.NewService(zendesk.NewClient(cfg.Zendesk), nil)

		reportStore, err = report.NewStore(cfg.ReportsDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.ReportsDir).Msg("Failed to open report directory")
		}
		deliverer = report.NewDeliverer(cfg.SMTP)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("zendesk-analytics starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		janitor, err := reportStore.StartJanitor(cfg.ReportSweepSchedule, cfg.ReportTTL)
		if err != nil {
			return err
		}
		defer janitor.Stop()

		server := mcp.NewServer(cfg, ticketService, reportStore, deliverer, Version)
		if err := server.Start(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(serveCmd, reportCmd)
}
