// Quantumgw is a presence-detection scanner for Verizon Fios routers.
//
// It authenticates against the router's web-admin HTTP interface,
// scrapes the device-list endpoint, and reports which MAC addresses are
// currently online. Two firmware families are supported (G1100 and
// G3100); the right protocol is detected automatically.
//
// Usage:
//
//	quantumgw [command] [flags]
//
// See 'quantumgw --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hollis/quantumgw/internal/logging"
	"github.com/hollis/quantumgw/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quantumgw",
	Short: "Fios Gateway Device Scanner",
	Long: `A presence-detection scanner for Verizon Fios routers.

Authenticates against the router's web-admin interface and reports the
devices it currently sees on the network. Supports the G1100 (Fios
Quantum Gateway) and G3100 (Fios Home Router) firmware families with
automatic detection.`,
	Version: version.Version,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quantumgw %s\n", version.Full())
	},
}
