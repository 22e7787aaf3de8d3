// Package cli wires the cobra command tree for the nftswapd daemon and its
// client helpers.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nftswapd/internal/config"
)

// Version is stamped by the build; the dev default is used otherwise.
var Version = "0.1.0-dev"

var (
	configFile string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "nftswapd",
	Short: "nftswapd - automated market maker for discrete items",
	Long: `nftswapd runs pooled liquidity markets that trade discrete items
against a fungible currency. Each pool quotes prices from its currency
reserve and item inventory, collects a swap fee for liquidity providers
and settles creator royalties before crediting sale proceeds.

The daemon exposes an HTTP JSON-RPC API for transaction submission and
pool queries, and periodically persists closed-ledger snapshots to the
configured key-value backend.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
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

// loadConfig resolves the effective configuration for the current invocation.
func loadConfig() (*config.Config, error) {
	return config.Load(configFile)
}
