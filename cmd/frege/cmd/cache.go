package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/frege/pkg/core/cache"
)

var (
	cacheJSON      bool
	cacheOlderThan time.Duration
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the rendering cache",
	Long: `The rendering cache stores parse output keyed by a SHA-256 of the
script and the output options. It is used by "parse --cache" and
"watch --cache", or always when cache.enabled is set in the config.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove entries not used recently",
	Long: `Remove entries not read or written within --older-than (default
cache.max_age from config) and compact the database.`,
	Args: cobra.NoArgs,
	RunE: runCachePrune,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all entries",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache database path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), settings.Cache.Path)
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd, cachePruneCmd, cacheClearCmd, cachePathCmd)

	cacheStatsCmd.Flags().BoolVar(&cacheJSON, "json", false, "print statistics as JSON")
	cachePruneCmd.Flags().DurationVar(&cacheOlderThan, "older-than", 0, "age limit (default cache.max_age)")
}

func openCache() (*cache.SQLiteStore, error) {
	return cache.NewSQLiteStore(cache.SQLiteConfig{Path: settings.Cache.Path})
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	store, err := openCache()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cacheJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(out, "Cache:    %s\n", store.Path())
	fmt.Fprintf(out, "Entries:  %d\n", stats.Entries)
	fmt.Fprintf(out, "Size:     %s\n", formatBytes(stats.Bytes))
	fmt.Fprintf(out, "Hits:     %d\n", stats.Hits)
	if stats.Entries > 0 {
		fmt.Fprintf(out, "Oldest:   %s\n", stats.OldestEntry.Local().Format(time.DateTime))
		fmt.Fprintf(out, "Newest:   %s\n", stats.NewestEntry.Local().Format(time.DateTime))
	}

	if len(stats.ByFormat) > 0 {
		formats := make([]string, 0, len(stats.ByFormat))
		for f := range stats.ByFormat {
			formats = append(formats, f)
		}
		sort.Strings(formats)

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-16s %s\n", "FORMAT", "ENTRIES")
		for _, f := range formats {
			fmt.Fprintf(out, "%-16s %d\n", f, stats.ByFormat[f])
		}
	}
	return nil
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	maxAge := settings.Cache.MaxAge.Duration
	if cmd.Flags().Changed("older-than") {
		maxAge = cacheOlderThan
	}

	store, err := openCache()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Prune(cmd.Context(), maxAge)
	if err != nil {
		return err
	}
	if err := store.Vacuum(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries older than %s\n", removed, maxAge)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, err := openCache()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}
	if err := store.Vacuum(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", removed)
	return nil
}

// formatBytes formats a size in B, KB or MB
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
