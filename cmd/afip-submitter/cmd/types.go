package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/afip-submitter/internal/model"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the portal's catalog codes",
	Long: `List the portal's invoice types per tax regime, recipient IVA
conditions, IVA rates, payment methods and currencies, with the numeric
codes the generator pages use and the names the JSON record set accepts.

Examples:
  afip-submitter types`,
	RunE: runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	for _, issuer := range []model.IssuerType{model.IssuerResponsableInscripto, model.IssuerMonotributo} {
		fmt.Fprintf(w, "Invoice types for %s:\n", issuer)
		fmt.Fprintln(w, "CODE\tNAME\tDESCRIPTION")
		for _, t := range model.InvoiceTypesFor(issuer) {
			fmt.Fprintf(w, "%d\t%s\t%s\n", int(t), t.Name(), t.Description())
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Recipient IVA conditions:")
	fmt.Fprintln(w, "CODE\tNAME\tDESCRIPTION")
	for _, c := range model.VatConditions() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", int(c), c.Name(), c.Description())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "IVA rates:")
	fmt.Fprintln(w, "CODE\tNAME\tDESCRIPTION")
	for _, r := range model.VatRates() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", int(r), r.Name(), r.Description())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Payment methods:")
	fmt.Fprintln(w, "CODE\tNAME\tDESCRIPTION")
	for _, m := range model.PaymentMethods() {
		card := ""
		if m.RequiresCardData() {
			card = " (requires card data)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s%s\n", int(m), m.Name(), m.Description(), card)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Currencies:")
	fmt.Fprintln(w, "CODE\tDESCRIPTION")
	for _, c := range model.Currencies() {
		fmt.Fprintf(w, "%s\t%s\n", c.Code, c.Description)
	}

	return w.Flush()
}
