package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/afip-submitter/internal/logger"
	"github.com/rezonia/afip-submitter/internal/model"
	"github.com/rezonia/afip-submitter/internal/pipeline"
	"github.com/rezonia/afip-submitter/internal/portal"
	"github.com/rezonia/afip-submitter/internal/runner"
	"github.com/rezonia/afip-submitter/internal/scheduler"
)

var (
	outputFile     string
	maxConcurrent  int
	batchDelay     time.Duration
	stepTimeout    time.Duration
	downloadsDir   string
	skipVerify     bool
	failConfirmMsg string
)

var submitCmd = &cobra.Command{
	Use:   "submit [file]",
	Short: "Submit a record set of invoices",
	Long: `Submit every invoice in a JSON record set.

Requests are grouped into batches so that no issuing CUIT ever appears
twice in the same batch; batches run one after another, invoices within
a batch run concurrently, each on its own portal session. A pause
between batches keeps the portal's rate limiting at bay.

Each invoice walks the generator wizard independently: a failure aborts
only that invoice and the batch carries on. Downloaded PDFs are checked
for structural validity and filed per issuing CUIT.

Examples:
  afip-submitter submit invoices.json
  afip-submitter submit invoices.json --max-concurrent 2 --delay 5s
  afip-submitter submit invoices.json -f table
  afip-submitter submit invoices.json -o results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	submitCmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 0, "Maximum invoices per batch (default: AFIP_MAX_CONCURRENT)")
	submitCmd.Flags().DurationVar(&batchDelay, "delay", 0, "Pause between batches (default: AFIP_DELAY_BETWEEN_BATCHES)")
	submitCmd.Flags().DurationVar(&stepTimeout, "step-timeout", 0, "Per-step timeout (default: AFIP_STEP_TIMEOUT)")
	submitCmd.Flags().StringVar(&downloadsDir, "downloads-dir", "", "Directory for downloaded PDFs (default: AFIP_DOWNLOADS_DIR)")
	submitCmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "Skip structural verification of downloaded PDFs")
	submitCmd.Flags().StringVar(&failConfirmMsg, "reject-confirmations", "", "Make every confirmation fail with this portal message (exercises rejection handling)")
	_ = submitCmd.Flags().MarkHidden("reject-confirmations")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	conf, err := loadedConfig()
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("max-concurrent") {
		maxConcurrent = conf.MaxConcurrent
	}
	if !cmd.Flags().Changed("delay") {
		batchDelay = conf.DelayBetweenBatches
	}
	if !cmd.Flags().Changed("step-timeout") {
		stepTimeout = conf.StepTimeout
	}
	if !cmd.Flags().Changed("downloads-dir") {
		downloadsDir = conf.DownloadsDir
	}
	if maxConcurrent < 1 {
		return fmt.Errorf("max-concurrent must be at least 1")
	}

	requests, err := readRecordSet(args[0])
	if err != nil {
		return err
	}

	batches := scheduler.Schedule(requests, maxConcurrent)
	log := logger.WithComponent("submit")
	log.Info().
		Int("requests", len(requests)).
		Int("batches", len(batches)).
		Int("max_concurrent", maxConcurrent).
		Msg("record set scheduled")

	sim := portal.NewSimulator()
	if failConfirmMsg != "" {
		sim.RejectConfirmation(failConfirmMsg)
	}

	p := pipeline.New(sim, sim, sim,
		pipeline.WithStepTimeout(stepTimeout),
		pipeline.WithDownloadVerification(conf.VerifyDownloads && !skipVerify),
		pipeline.WithDownloadDir(downloadsDir),
		pipeline.WithLogger(logger.WithComponent("pipeline")),
	)

	r := runner.New(p,
		runner.WithDelay(batchDelay),
		runner.WithLogger(logger.WithComponent("runner")),
	)

	results := r.RunAll(context.Background(), batches)
	report := runner.Summarize(results)

	if err := outputResults(results); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n%d submitted: %d succeeded, %d failed\n",
		report.Total, report.Succeeded, report.Failed)

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d submissions failed", report.Failed, report.Total)
	}
	return nil
}

func readRecordSet(path string) ([]*model.InvoiceRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open record set: %w", err)
	}
	defer f.Close()

	requests, err := model.ParseRequests(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("record set %s is empty", path)
	}
	return requests, nil
}

func outputResults(results []model.ProcessingResult) error {
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(writer, results)
	case "table":
		return outputTable(writer, results)
	case "csv":
		return outputCSV(writer, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w *os.File, results []model.ProcessingResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func outputTable(w *os.File, results []model.ProcessingResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ISSUER\tTYPE\tSTATUS\tDOCUMENT\tERROR")
	fmt.Fprintln(tw, "------\t----\t------\t--------\t-----")

	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.IssuerCUIT,
			r.InvoiceType,
			r.Status,
			r.DocumentID,
			r.Error,
		)
	}

	return tw.Flush()
}

func outputCSV(w *os.File, results []model.ProcessingResult) error {
	fmt.Fprintln(w, "issuer_cuit,invoice_type,status,document_id,file,error")

	for _, r := range results {
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s\n",
			r.IssuerCUIT,
			escapeCSV(r.InvoiceType),
			r.Status,
			r.DocumentID,
			escapeCSV(r.File),
			escapeCSV(r.Error),
		)
	}

	return nil
}

func escapeCSV(s string) string {
	if strings.Contains(s, ",") || strings.Contains(s, "\"") || strings.Contains(s, "\n") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
