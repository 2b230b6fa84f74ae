package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rapestimate/estimate-parser/dto"
	"github.com/rapestimate/estimate-parser/service"
)

var (
	parseJSON     bool
	parseXLSX     string
	parsePassword string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a .pdf or .txt estimate and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		result, err := newEstimateService(cfg, appLog).ParseEstimate(cmd.Context(), path, data, parsePassword)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		if parseXLSX != "" {
			workbook, err := service.NewExporter(appLog).ExportXLSX(result)
			if err != nil {
				return err
			}
			if err := os.WriteFile(parseXLSX, workbook, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", parseXLSX, err)
			}
		}

		if parseJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		return writeReport(cmd.OutOrStdout(), result)
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print the full result as JSON")
	parseCmd.Flags().StringVar(&parseXLSX, "xlsx", "", "Also write an XLSX workbook to this path")
	parseCmd.Flags().StringVar(&parsePassword, "password", "", "Password for encrypted PDFs")
	rootCmd.AddCommand(parseCmd)
}

var reportHeader = []struct {
	field string
	label string
}{
	{dto.FieldInsuredName, "Insured"},
	{dto.FieldPropertyAddress, "Property"},
	{dto.FieldClaimNumber, "Claim Number"},
	{dto.FieldPolicyNumber, "Policy Number"},
	{dto.FieldDateOfLoss, "Date of Loss"},
}

func writeReport(out io.Writer, result *dto.ParseResult) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	for _, h := range reportHeader {
		if v, ok := result.Header[h.field]; ok {
			fmt.Fprintf(tw, "%s:\t%s\n", h.label, v)
		}
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "CATEGORY\tITEMS\tRCV\tDEPRECIATION\tACV")
	for _, c := range result.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\n", c.Name, c.ItemCount, c.RCV, c.Depreciation, c.ACV)
	}
	t := result.Totals
	fmt.Fprintf(tw, "TOTAL\t%d\t%.2f\t%.2f\t%.2f\n", result.Metadata.TotalLineItems, t.RCV, t.Depreciation, t.ACV)
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Deductible:\t%.2f\n", t.Deductible)
	fmt.Fprintf(tw, "Net Claim:\t%.2f\n", t.NetClaim)
	fmt.Fprintf(tw, "Duplicates removed:\t%d\n", result.Metadata.DuplicatesRemoved)
	if result.Metadata.TextSource != "" {
		fmt.Fprintf(tw, "Text source:\t%s\n", result.Metadata.TextSource)
	}
	return tw.Flush()
}
