package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Lexicon - a snapshot cache for symbol metadata",
	Long: `Lexicon resolves structural metadata for classes, interfaces, and
traits through a two-tier cache: an in-memory map backed by persisted
snapshot files. Symbols are described by manifests that external
extractors emit; the first resolve computes a snapshot, later resolves
are served from cache.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root (holds .lexicon/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
