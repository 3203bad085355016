package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Shugur-Network/quill/internal/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string         // Path to custom config file (optional)
	cfg     *config.Config // Global reference to loaded configuration
)

// rootCmd defines the main CLI command for quill
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill builds and signs bounded Nostr events",
	Long:  `Fixed-footprint Nostr event pipeline: canonical serialization, schnorr signing, and encrypted direct messages within configurable size budgets.`,
	Example: `
  quill sign --key <hex> --content "hello"
  quill sign --key-file seckey.hex --kind 22242 --relay wss://relay.damus.io --challenge abc123
  quill sign --batch notes.txt --workers 8 --rate 200
  quill dm seal --key <hex> --to <pubkey> --content "psst"`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for version command
		if cmd.Name() == "version" {
			return nil
		}

		// Load configuration (use nil logger to avoid sync issues)
		var err error
		cfg, err = config.Load(cfgFile, nil)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}

		// Override config with command line flags if specified
		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.Logging.Level, _ = flags.GetString("log-level")
		}
		if flags.Changed("log-file") {
			cfg.Logging.FilePath, _ = flags.GetString("log-file")
		}
		if flags.Changed("log-format") {
			cfg.Logging.Format, _ = flags.GetString("log-format")
		}
		if flags.Changed("metrics-port") {
			cfg.Metrics.Port, _ = flags.GetInt("metrics-port")
			cfg.Metrics.Enabled = true
		}

		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: show help when no subcommand is provided
		if err := cmd.Help(); err != nil {
			fmt.Fprintf(os.Stderr, "Error displaying help: %v\n", err)
		}
	},
}

// Execute runs the root command with the provided context
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init is automatically called before main(), sets up flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to custom config file (optional)")

	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().String("log-file", "", "Path to the log file")
	rootCmd.PersistentFlags().String("log-format", "console", "Log output format (console or json)")
	rootCmd.PersistentFlags().Int("metrics-port", 9090, "Port for Prometheus metrics during batch runs")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of quill",
		Long:  "Print the version number of quill along with build information",
		Run: func(cmd *cobra.Command, args []string) {
			if detailed, _ := cmd.Flags().GetBool("detailed"); detailed {
				fmt.Println(GetFullVersionInfo())
			} else {
				fmt.Println(GetVersionWithPrefix())
			}
		},
	}
	versionCmd.Flags().BoolP("detailed", "d", false, "Show detailed version information")
	rootCmd.AddCommand(versionCmd)

	rootCmd.AddCommand(newSignCmd())
	rootCmd.AddCommand(newDMCmd())
}
