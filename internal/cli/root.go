// Package cli implements the propd command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped by the build and reported by server_info.
const Version = "0.1.0-dev"

var (
	// Global flags
	configFile string
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "propd",
	Short: "propd - proportional asset ledger daemon",
	Long: `propd maintains a ledger of fractionally owned assets. Every asset is
divided into a fixed supply of one hundred shares that can be offered,
bought and transferred between accounts, with a designated main owner
controlling the sale terms.`,
	Version: Version,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output to console after startup")
}
