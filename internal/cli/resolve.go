package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/project-lexicon/internal/descriptor"
	"github.com/mvp-joe/project-lexicon/internal/loader"
)

var (
	resolveRefresh     bool
	resolveRefreshOnly []string
	resolveJSON        bool
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <class|interface|trait> <identifier>",
	Short: "Resolve a symbol through the snapshot cache",
	Long: `Resolve looks up the structural metadata for a class, interface, or
trait. Resolution tries the in-memory cache first, then the persisted
snapshot, then the manifests; a freshly computed result is snapshotted
for the next run.

Examples:
  # Resolve a class
  lexicon resolve class 'Acme\Widget'

  # Recompute the snapshot even if one exists
  lexicon resolve class 'Acme\Widget' --refresh

  # Recompute selected identifiers only, serve the rest from cache
  lexicon resolve class 'Acme\Widget' --refresh-only 'Acme\Widget','Acme\Gadget'

  # Print the snapshot document as stored on disk
  lexicon resolve trait 'Acme\Sortable' --json
`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveRefresh, "refresh", false, "Recompute the snapshot even if one exists")
	resolveCmd.Flags().StringSliceVar(&resolveRefreshOnly, "refresh-only", nil, "Recompute snapshots for these identifiers only")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Print the snapshot document as stored on disk")
}

func runResolve(cmd *cobra.Command, args []string) error {
	return executeResolve(rootDir, args[0], args[1], resolveRefresh, resolveRefreshOnly, resolveJSON)
}

func executeResolve(root, kindArg, identifier string, refresh bool, refreshOnly []string, asJSON bool) error {
	kind, err := descriptor.ParseKind(kindArg)
	if err != nil {
		return err
	}

	cfg, err := loadConfigFrom(root)
	if err != nil {
		return err
	}

	l, _, err := openLoader(root, cfg)
	if err != nil {
		return err
	}
	defer l.Close()

	policy := loader.Fastest()
	switch {
	case refresh:
		policy = loader.RefreshAll()
	case len(refreshOnly) > 0:
		policy = loader.RefreshOnly(refreshOnly...)
	}

	sym, err := l.Resolve(context.Background(), kind, identifier, policy)
	if err != nil {
		return err
	}

	if asJSON {
		data, found, err := l.Store().Read(identifier)
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		if !found {
			return fmt.Errorf("no snapshot on disk for %s", identifier)
		}
		fmt.Println(strings.TrimRight(string(data), "\n"))
		return nil
	}

	fmt.Print(formatSymbolSummary(sym))
	return nil
}

// formatSymbolSummary renders a short human-readable description of a symbol.
func formatSymbolSummary(sym *descriptor.Symbol) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", sym.Kind(), sym.Name())
	if ns := sym.Namespace(); ns != "" {
		fmt.Fprintf(&b, "  Namespace:  %s\n", ns)
	}
	if parent := sym.Parent(); parent != "" {
		fmt.Fprintf(&b, "  Extends:    %s\n", parent)
	}
	if ifaces := sym.Interfaces(); len(ifaces) > 0 {
		fmt.Fprintf(&b, "  Implements: %s\n", strings.Join(ifaces, ", "))
	}
	if traits := sym.Traits(); len(traits) > 0 {
		fmt.Fprintf(&b, "  Uses:       %s\n", strings.Join(traits, ", "))
	}
	if mods := sym.Modifiers().Names(); len(mods) > 0 {
		fmt.Fprintf(&b, "  Modifiers:  %s\n", strings.Join(mods, " "))
	}
	fmt.Fprintf(&b, "  Members:    %d properties, %d constants, %d methods\n",
		len(sym.Properties()), len(sym.Constants()), len(sym.Methods()))

	return b.String()
}
