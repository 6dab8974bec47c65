package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"caixasync/cmd/caixasync/config"
	"caixasync/internal/grid"
)

// Flags for the reconcile command
var (
	formattedFile string
	ledgerFile    string
	outputDir     string
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the formatted spreadsheet with the bank ledger",
	Long: `Reconcile matches the formatted movement spreadsheet against the bank
movement ledger by movement code, amount and branch. Matched entries are
routed to one accounting-import spreadsheet per bank account; formatted
movements absent from the ledger are collected in a separate report.

This command requires:
- The formatted spreadsheet produced by 'caixasync format'
- The bank movement ledger export

Examples:
  # Basic reconciliation into the current directory
  caixasync reconcile --formatted formatado.xlsx --ledger extrato.xlsx

  # Write outputs to a dedicated directory
  caixasync reconcile -f formatado.xlsx -l extrato.xlsx --output-dir ./saida`,

	PreRunE: validateReconcileFlags,
	RunE:    runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVarP(&formattedFile, "formatted", "f", "", "path to the formatted spreadsheet (required)")
	reconcileCmd.Flags().StringVarP(&ledgerFile, "ledger", "l", "", "path to the bank movement ledger (required)")
	reconcileCmd.Flags().StringVarP(&outputDir, "output-dir", "d", ".", "directory receiving the output spreadsheets")

	reconcileCmd.MarkFlagRequired("formatted")
	reconcileCmd.MarkFlagRequired("ledger")

	viper.BindPFlag("formatted", reconcileCmd.Flags().Lookup("formatted"))
	viper.BindPFlag("ledger", reconcileCmd.Flags().Lookup("ledger"))
	viper.BindPFlag("output-dir", reconcileCmd.Flags().Lookup("output-dir"))
}

func validateReconcileFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	if v := viper.GetString("formatted"); v != "" {
		formattedFile = v
	}
	if v := viper.GetString("ledger"); v != "" {
		ledgerFile = v
	}
	if v := viper.GetString("output-dir"); v != "" {
		outputDir = v
	}

	if formattedFile == "" {
		return fmt.Errorf("formatted is required")
	}
	if ledgerFile == "" {
		return fmt.Errorf("ledger is required")
	}

	if err := validateFileExists(formattedFile, "formatted spreadsheet"); err != nil {
		return err
	}
	if err := validateFileExists(ledgerFile, "bank ledger"); err != nil {
		return err
	}

	// Surface output problems before any matching work
	return grid.EnsureWritableDir(outputDir)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	handler := NewCLIErrorHandler()

	routing, err := config.CreateRoutingConfig()
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting reconciliation...\n")
		fmt.Fprintf(os.Stderr, "Formatted file: %s\n", formattedFile)
		fmt.Fprintf(os.Stderr, "Ledger file: %s\n", ledgerFile)
		fmt.Fprintf(os.Stderr, "Output directory: %s\n", outputDir)
	}

	pipeline := newPipeline()
	summary, err := pipeline.Reconcile(routing, formattedFile, ledgerFile, outputDir)
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	stats := summary.Stats
	fmt.Printf("Reconciled %d formatted movements against %d ledger entries.\n",
		stats.FormattedRecords, stats.LedgerEntries)
	fmt.Printf("Matched %d entries, %d movements unrelated.\n",
		stats.MatchedEntries, stats.UnrelatedRecords)

	if len(summary.AccountFiles) == 0 {
		fmt.Println("No entries routed to any bank account; no import files were written.")
	} else {
		fmt.Printf("Wrote %d account import file(s):\n", len(summary.AccountFiles))
		for _, path := range summary.AccountFiles {
			fmt.Printf("  %s\n", filepath.Base(path))
		}
	}

	if summary.UnrelatedFile != "" {
		fmt.Printf("Unrelated movements written to %s\n", filepath.Base(summary.UnrelatedFile))
	}

	return nil
}
