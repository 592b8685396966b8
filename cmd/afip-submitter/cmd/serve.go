package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/afip-submitter/internal/logger"
	"github.com/rezonia/afip-submitter/internal/pipeline"
	"github.com/rezonia/afip-submitter/internal/portal"
	"github.com/rezonia/afip-submitter/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for validating and submitting record sets.

The API provides endpoints for:
  - POST /api/v1/invoices/validate  - Validate a record set
  - POST /api/v1/invoices/submit    - Schedule and submit a record set
  - GET  /health                    - Health check

Examples:
  # Start server on default port
  afip-submitter serve

  # Start on a custom port
  afip-submitter serve --address :9090

  # Start in debug mode
  afip-submitter serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default: AFIP_SERVER_ADDRESS)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 5*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	conf, err := loadedConfig()
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("address") {
		serverAddr = conf.ServerAddress
	}

	sim := portal.NewSimulator()
	p := pipeline.New(sim, sim, sim,
		pipeline.WithStepTimeout(conf.StepTimeout),
		pipeline.WithDownloadVerification(conf.VerifyDownloads),
		pipeline.WithDownloadDir(conf.DownloadsDir),
		pipeline.WithLogger(logger.WithComponent("pipeline")),
	)

	config := &server.Config{
		Address:       serverAddr,
		MaxConcurrent: conf.MaxConcurrent,
		BatchDelay:    conf.DelayBetweenBatches,
		ReadTimeout:   readTimeout,
		WriteTimeout:  writeTimeout,
		Debug:         serverDebug,
	}

	srv := server.NewServer(config, p)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	return srv.Run()
}
