package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"caixasync/pkg/logger"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "caixasync",
	Short: "Point-of-sale movement formatter and bank ledger reconciler",
	Long: `Caixasync turns the raw point-of-sale movement export into a structured
spreadsheet and reconciles it against the bank movement ledger, producing
per-account accounting import files.

Examples:
  caixasync format --input movimentos.xlsx --output formatado.xlsx
  caixasync reconcile --formatted formatado.xlsx --ledger extrato.xlsx --output-dir ./saida
  caixasync version`,
	Version: getVersionString(),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)

		// If a config file is specified, read it in.
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
			os.Exit(1)
		}

		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}

	// Read environment variables that match
	viper.SetEnvPrefix("CAIXASYNC")
	viper.AutomaticEnv()

	configureLogging()
}

// configureLogging sets the global logger up from the resolved settings
func configureLogging() {
	logConfig := logger.DefaultConfig()
	if level := viper.GetString("log-level"); level != "" {
		logConfig.Level = logger.Level(level)
	}
	if viper.GetBool("verbose") {
		logConfig.Level = logger.DebugLevel
	}
	if format := viper.GetString("log-format"); format != "" {
		logConfig.Format = logger.Format(format)
	}

	log, err := logger.NewLogger(logConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logging: %s\n", err)
		os.Exit(1)
	}
	logger.SetGlobalLogger(log)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = getVersionString()
}

func getVersionString() string {
	if version == "dev" {
		return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	}
	return version
}
