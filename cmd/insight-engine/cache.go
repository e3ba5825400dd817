// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/insight-engine/internal/cache"
	"github.com/pdiddy/insight-engine/internal/categorize"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the last-good-result cache (show, export, clear)",
	Long: `Cache manages the SQLite database that keeps the most recent successful
categorization per query. Categorize falls back to it when a search comes back
empty.`,
}

// --- show subcommand ---

var cacheShowCmd = &cobra.Command{
	Use:   "show [query]",
	Short: "List cached queries, or print the categories cached for one",
	RunE:  runCacheShow,
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	store, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) > 0 {
		query := strings.Join(args, " ")
		entry, ok, err := store.Get(cmd.Context(), query)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no cached categories for %q", query)
		}
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format); err != nil {
			return err
		}
		return writeResult(categorize.Result{
			RunID:      entry.RunID,
			Query:      entry.Query,
			Categories: entry.Categories,
			Summary:    categorize.Summarize(entry.Categories),
			Cached:     true,
		}, format, out)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Entries(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "Cache is empty.")
		return nil
	}

	fmt.Fprintf(out, "%-40s  %-36s  %-10s  %s\n", "Query", "Run", "Categories", "Updated")
	fmt.Fprintln(out, strings.Repeat("-", 110))
	for _, e := range entries {
		query := truncateRunes(e.Query, 40)
		fmt.Fprintf(out, "%-40s  %-36s  %-10d  %s\n",
			query, e.RunID, len(e.Categories), e.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(out, "\n%d entries\n", len(entries))
	return nil
}

// --- export subcommand ---

var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the cache to YAML or JSON",
	Long: `Export writes every cached entry to export.yaml or export.json in the
cache directory.`,
	RunE: runCacheExport,
}

func runCacheExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context())
	case "json":
		path, err = store.ExportJSON(cmd.Context())
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
	return nil
}

// --- clear subcommand ---

var cacheClearCmd = &cobra.Command{
	Use:   "clear <query>",
	Short: "Remove the cached categories for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCache(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Delete(cmd.Context(), strings.Join(args, " "))
	},
}

// --- shared helpers ---

// truncateRunes shortens s to max runes, ending in "...".
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func openCache(cmd *cobra.Command) (*cache.SQLite, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dir := cfg.Cache.Dir
	if cmd.Flags().Changed("cache-dir") {
		dir, _ = cmd.Flags().GetString("cache-dir")
	}
	return cache.Open(dir)
}

func init() {
	cacheCmd.PersistentFlags().String("cache-dir", ".insight-engine", "directory holding the result cache")

	cacheShowCmd.Flags().Int("limit", 0, "maximum entries to list (0 = all)")
	cacheShowCmd.Flags().String("format", "table", "output format for a single query: table, json or yaml")

	cacheExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheExportCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
