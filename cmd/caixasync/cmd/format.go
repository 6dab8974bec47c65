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

// Flags for the format command
var (
	formatInput  string
	formatOutput string
)

// formatCmd represents the format command
var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Format the raw point-of-sale movement export",
	Long: `Format reads the raw header-less movement export, reconstructs the
movement blocks, and writes a structured spreadsheet with one row per
movement. Outgoing (Saída) movements are dropped.

Examples:
  # Basic formatting
  caixasync format --input movimentos.xlsx --output formatado.xlsx

  # The .xlsx extension is appended when missing
  caixasync format -i movimentos.xlsx -o formatado`,

	PreRunE: validateFormatFlags,
	RunE:    runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().StringVarP(&formatInput, "input", "i", "", "path to the raw movement export (required)")
	formatCmd.Flags().StringVarP(&formatOutput, "output", "o", "", "path of the formatted spreadsheet (required)")

	formatCmd.MarkFlagRequired("input")
	formatCmd.MarkFlagRequired("output")

	viper.BindPFlag("input", formatCmd.Flags().Lookup("input"))
	viper.BindPFlag("output", formatCmd.Flags().Lookup("output"))
}

func validateFormatFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	if v := viper.GetString("input"); v != "" {
		formatInput = v
	}
	if v := viper.GetString("output"); v != "" {
		formatOutput = v
	}

	if formatInput == "" {
		return fmt.Errorf("input is required")
	}
	if formatOutput == "" {
		return fmt.Errorf("output is required")
	}

	if err := validateFileExists(formatInput, "movement export"); err != nil {
		return err
	}

	formatOutput = grid.EnsureXLSXExt(formatOutput)

	// Surface output problems before any parsing work
	return ensureParentWritable(formatOutput)
}

func runFormat(cmd *cobra.Command, args []string) error {
	handler := NewCLIErrorHandler()

	parserConfig, err := config.CreateParserConfig()
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Formatting movement export...\n")
		fmt.Fprintf(os.Stderr, "Input: %s\n", formatInput)
		fmt.Fprintf(os.Stderr, "Output: %s\n", formatOutput)
	}

	pipeline := newPipeline()
	summary, err := pipeline.Format(parserConfig, formatInput, formatOutput)
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	if summary.Records == 0 {
		fmt.Println("No incoming movements found in the export; nothing was written.")
		return nil
	}

	fmt.Printf("Formatted %d movements (%d rows read, %d outgoing blocks dropped).\n",
		summary.Records, summary.RowsSeen, summary.BlocksDropped)
	fmt.Printf("Output written to %s\n", formatOutput)

	return nil
}

// FormatSummary reports what one format run did
type FormatSummary struct {
	RowsSeen      int
	LineItems     int
	Records       int
	BlocksDropped int
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	// Check if file is readable
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	file.Close()

	return nil
}

func ensureParentWritable(path string) error {
	return grid.EnsureWritableDir(filepath.Dir(path))
}
