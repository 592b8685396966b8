package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a record set without submitting",
	Long: `Validate every invoice in a JSON record set against the portal's
business rules, without opening any session.

Checks performed:
  - CUIT format (11 digits after stripping punctuation)
  - Invoice type allowed for the issuer's tax regime
  - Recipient IVA condition legal for the invoice type
  - Issuance date inside the portal's ±10 day window
  - Billing period ordering when the concept includes services
  - Unit price and discount digit and precision limits
  - IVA rate required for Responsable Inscripto, absent for Monotributo
  - At least one recognized payment method

Examples:
  afip-submitter validate invoices.json
  afip-submitter validate invoices.json -f json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	requests, err := readRecordSet(args[0])
	if err != nil {
		return err
	}

	now := time.Now()
	results := make([]*RecordValidation, 0, len(requests))
	allValid := true

	for i, req := range requests {
		result := &RecordValidation{
			Index:      i,
			IssuerCUIT: req.IssuerKey(),
			Valid:      true,
		}
		if _, err := req.Validate(now); err != nil {
			result.Valid = false
			result.Error = err.Error()
			allValid = false
		}
		results = append(results, result)
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ record %d (%s): VALID\n", r.Index, r.IssuerCUIT)
			} else {
				fmt.Printf("✗ record %d (%s): INVALID\n", r.Index, r.IssuerCUIT)
				fmt.Printf("  - %s\n", r.Error)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some records")
	}

	return nil
}

// RecordValidation holds the validation outcome of a single record
type RecordValidation struct {
	Index      int    `json:"index"`
	IssuerCUIT string `json:"issuer_cuit"`
	Valid      bool   `json:"valid"`
	Error      string `json:"error,omitempty"`
}
