package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/project-lexicon/internal/snapshot"
	"github.com/mvp-joe/project-lexicon/internal/store"
)

var (
	cacheCleanQuiet bool
	cacheClearQuiet bool
	cacheClearID    string
)

// cacheCmd represents the cache command group
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the snapshot cache",
	Long: `Manage the persisted snapshot cache.

The cache command provides utilities for inspecting and managing the
snapshot files that back symbol resolution.

Available commands:
  info   - Show cache location and stats
  stats  - Show per-snapshot details
  clean  - Manually trigger snapshot eviction
  clear  - Remove snapshots entirely`,
}

// cacheInfoCmd shows cache location and basic stats
var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache location and stats",
	Long: `Display the cache location and basic statistics.

Shows:
  - Cache directory location
  - Number of stored snapshots
  - Total cache size
  - Eviction limits from configuration`,
	RunE: runCacheInfo,
}

// cacheStatsCmd shows detailed per-snapshot statistics
var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-snapshot details",
	Long: `Display detailed statistics for each stored snapshot.

Shows for each snapshot:
  - Symbol name and kind
  - Time since it was written
  - File size
  - Eviction status (active, candidate, corrupt)`,
	RunE: runCacheStats,
}

// cacheCleanCmd manually triggers snapshot eviction
var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Manually trigger snapshot eviction",
	Long: `Manually trigger eviction of stale snapshots.

Eviction criteria (in order):
  1. Snapshots not written for more than max_age_days
  2. Oldest snapshots while the cache exceeds max_size_mb (LRU)

An evicted snapshot is simply recomputed on its next resolve.`,
	RunE: runCacheClean,
}

// cacheClearCmd removes snapshots outright
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove snapshots entirely",
	Long: `Clear removes persisted snapshots, forcing recomputation on the next
resolve.

By default the whole cache is emptied. Use --id to remove the snapshot
for a single identifier.

Examples:
  # Remove every snapshot
  lexicon cache clear

  # Remove the snapshot for one symbol
  lexicon cache clear --id 'Acme\Widget'
`,
	RunE: runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheCleanCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheCleanCmd.Flags().BoolVarP(&cacheCleanQuiet, "quiet", "q", false, "Suppress output messages")
	cacheClearCmd.Flags().BoolVarP(&cacheClearQuiet, "quiet", "q", false, "Suppress output messages")
	cacheClearCmd.Flags().StringVar(&cacheClearID, "id", "", "Remove only the snapshot for this identifier")
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	return executeCacheInfo(rootDir)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	return executeCacheStats(rootDir)
}

func runCacheClean(cmd *cobra.Command, args []string) error {
	return executeCacheClean(rootDir, cacheCleanQuiet)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	return executeCacheClear(rootDir, cacheClearID, cacheClearQuiet)
}

func executeCacheInfo(root string) error {
	cfg, err := loadConfigFrom(root)
	if err != nil {
		return err
	}

	st, err := openSnapshotStore(cfg)
	if err != nil {
		return err
	}

	stats, err := st.Stats()
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}

	fmt.Printf("Cache Location: %s\n", st.Dir())
	fmt.Printf("Snapshots: %d\n", stats.Snapshots)
	fmt.Printf("Total Size: %.2f MB\n", stats.SizeMB)
	fmt.Printf("Max Age: %d days\n", cfg.Cache.MaxAgeDays)
	fmt.Printf("Max Size: %.0f MB\n", cfg.Cache.MaxSizeMB)

	return nil
}

func executeCacheStats(root string) error {
	cfg, err := loadConfigFrom(root)
	if err != nil {
		return err
	}

	st, err := openSnapshotStore(cfg)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(st.Dir())
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	type snapshotRow struct {
		symbol  string
		kind    string
		written time.Time
		sizeMB  float64
		status  string
	}

	maxAge := time.Duration(cfg.Cache.MaxAgeDays) * 24 * time.Hour
	var rows []snapshotRow
	var totalMB float64

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		row := snapshotRow{
			symbol:  entry.Name(),
			kind:    "?",
			written: info.ModTime(),
			sizeMB:  float64(info.Size()) / (1024 * 1024),
			status:  "corrupt",
		}

		data, err := os.ReadFile(filepath.Join(st.Dir(), entry.Name()))
		if err == nil {
			if sym, err := snapshot.Decode(data); err == nil {
				row.symbol = sym.Name()
				row.kind = string(sym.Kind())
				row.status = "active"
				if maxAge > 0 && time.Since(row.written) > maxAge {
					row.status = "eviction candidate"
				}
			}
		}

		totalMB += row.sizeMB
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		fmt.Println("No stored snapshots")
		return nil
	}

	// Most recently written first.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].written.After(rows[j].written)
	})

	fmt.Printf("%-35s %-10s %-15s %-10s %s\n",
		"Symbol", "Kind", "Written", "Size", "Status")
	fmt.Println("--------------------------------------------------------------------------------")

	for _, row := range rows {
		fmt.Printf("%-35s %-10s %-15s %-10s %s\n",
			truncate(row.symbol, 35),
			row.kind,
			formatDuration(time.Since(row.written)),
			fmt.Sprintf("%.2f MB", row.sizeMB),
			row.status)
	}

	fmt.Println()
	fmt.Printf("Total: %.2f MB across %d snapshot(s)\n", totalMB, len(rows))

	return nil
}

func executeCacheClean(root string, quiet bool) error {
	cfg, err := loadConfigFrom(root)
	if err != nil {
		return err
	}

	st, err := openSnapshotStore(cfg)
	if err != nil {
		return err
	}

	policy := store.EvictionPolicy{
		MaxAgeDays: cfg.Cache.MaxAgeDays,
		MaxSizeMB:  cfg.Cache.MaxSizeMB,
	}

	if !quiet {
		fmt.Println("Running snapshot eviction...")
	}

	result, err := st.EvictStale(policy)
	if err != nil {
		return fmt.Errorf("eviction failed: %w", err)
	}

	if !quiet {
		if result.Evicted == 0 {
			fmt.Println("No snapshots evicted (cache is within limits)")
		} else {
			fmt.Printf("Evicted %d snapshot(s), freed %.2f MB\n", result.Evicted, result.FreedMB)
			fmt.Printf("Remaining: %.2f MB\n", result.RemainingMB)
		}
	}

	return nil
}

func executeCacheClear(root, identifier string, quiet bool) error {
	cfg, err := loadConfigFrom(root)
	if err != nil {
		return err
	}

	st, err := openSnapshotStore(cfg)
	if err != nil {
		return err
	}

	// Single identifier: remove one snapshot, absent is fine.
	if identifier != "" {
		if err := st.Delete(identifier); err != nil {
			return fmt.Errorf("failed to remove snapshot: %w", err)
		}
		if !quiet {
			fmt.Printf("✓ Cleared snapshot for %s\n", identifier)
		}
		return nil
	}

	stats, err := st.Stats()
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}

	if err := st.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	if !quiet {
		if stats.Snapshots > 0 {
			fmt.Printf("✓ Cleared %d snapshot(s) (~%.1f MB)\n", stats.Snapshots, stats.SizeMB)
		} else {
			fmt.Println("✓ Cleared snapshot cache")
		}
		fmt.Println("Next resolve will recompute snapshots from the manifests")
	}

	return nil
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		if minutes == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", minutes)
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
