package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rezonia/afip-submitter/internal/config"
	"github.com/rezonia/afip-submitter/internal/logger"
)

var (
	version = "1.0.0"

	// Global flags
	outputFormat string

	cfg    *config.Config
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "afip-submitter",
	Short: "Issue electronic invoices through AFIP's Comprobantes en Línea",
	Long: `afip-submitter automates invoice issuance on AFIP's web portal.

It validates a JSON record set of invoice requests against the portal's
business rules, groups them into batches so that no taxpayer ever has two
concurrent sessions, and drives the four-step generator wizard for each
invoice, downloading the resulting PDF.

Examples:
  # Validate a record set without touching the portal
  afip-submitter validate invoices.json

  # Submit all invoices
  afip-submitter submit invoices.json

  # Submit with bounded concurrency and a longer pause between batches
  AFIP_MAX_CONCURRENT=2 AFIP_DELAY_BETWEEN_BATCHES=5 afip-submitter submit invoices.json

  # List the portal's invoice types, IVA conditions and payment methods
  afip-submitter types`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table, csv)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	cfg, cfgErr = config.Load()
	if cfgErr == nil {
		cfgErr = logger.Setup(cfg.LoggerConfig())
	}
}

// loadedConfig returns the environment configuration; config errors
// surface when the subcommand runs so that help keeps working
func loadedConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	return cfg, nil
}
