// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/insight-engine/internal/cache"
	"github.com/pdiddy/insight-engine/internal/categorize"
	"github.com/pdiddy/insight-engine/internal/input"
	"github.com/pdiddy/insight-engine/internal/registry"
	"github.com/pdiddy/insight-engine/pkg/types"
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize <response-file>",
	Short: "Categorize a completed search response",
	Long: `Categorize reads a search response file (.json, .yaml or .yml) holding the
query, the search results, the LLM summary and any categories the LLM proposed.
It classifies the items, merges and scores the categories, pins Key Insights
first and prints at most --max-categories of them.

When the response holds no items the last cached categorization for the same
query is printed instead. Successful runs refresh the cache.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategorize,
}

func runCategorize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyCategorizeFlags(cmd, &cfg)

	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		s, err := cache.Open(cfg.Cache.Dir)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	res, err := categorizeFile(cmd.Context(), args[0], cfg, store, logger)
	if err != nil {
		return err
	}
	return writeResult(res, format, cmd.OutOrStdout())
}

// categorizeFile runs the pipeline over one response file. A nil store
// disables the cache.
func categorizeFile(ctx context.Context, path string, cfg types.Config, store cache.Cache, log *zap.Logger) (categorize.Result, error) {
	resp, err := input.ReadFile(path)
	if err != nil {
		return categorize.Result{}, err
	}
	batch := input.Normalize(resp)

	if cfg.Registry.Path != "" {
		reg, err := registry.Load(cfg.Registry.Path)
		if err != nil {
			return categorize.Result{}, err
		}
		batch.Items = reg.EnrichSources(batch.Items)
		for i := range batch.Candidates {
			batch.Candidates[i].Content = reg.EnrichSources(batch.Candidates[i].Content)
		}
		log.Debug("enriched sources", zap.Int("registry_entries", reg.Len()))
	}

	empty := len(batch.Items) == 0 && len(batch.Candidates) == 0
	if store != nil && empty && batch.Query != "" {
		entry, ok, err := store.Get(ctx, batch.Query)
		if err != nil {
			return categorize.Result{}, fmt.Errorf("reading cache: %w", err)
		}
		if ok {
			log.Info("no results, using cached categories",
				zap.String("query", batch.Query),
				zap.String("run_id", entry.RunID),
				zap.Time("updated_at", entry.UpdatedAt))
			return categorize.Result{
				RunID:      entry.RunID,
				Query:      batch.Query,
				Categories: entry.Categories,
				Summary:    categorize.Summarize(entry.Categories),
				Cached:     true,
			}, nil
		}
	}

	p, err := categorize.New(cfg.Categorize, log)
	if err != nil {
		return categorize.Result{}, err
	}
	res := p.Run(batch.Query, batch.Items, batch.Candidates)

	if store != nil && !empty && batch.Query != "" {
		err := store.Set(ctx, cache.Entry{Query: res.Query, RunID: res.RunID, Categories: res.Categories})
		if err != nil {
			return res, fmt.Errorf("writing cache: %w", err)
		}
	}
	return res, nil
}

func applyCategorizeFlags(cmd *cobra.Command, cfg *types.Config) {
	flags := cmd.Flags()
	if flags.Changed("max-categories") {
		cfg.Categorize.MaxCategories, _ = flags.GetInt("max-categories")
	}
	if flags.Changed("enhance-limit") {
		cfg.Categorize.EnhanceLimit, _ = flags.GetInt("enhance-limit")
	}
	if flags.Changed("dedup") {
		cfg.Categorize.DedupContent, _ = flags.GetBool("dedup")
	}
	if flags.Changed("include-classified") {
		cfg.Categorize.IncludeClassified, _ = flags.GetBool("include-classified")
	}
	if flags.Changed("registry") {
		cfg.Registry.Path, _ = flags.GetString("registry")
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir, _ = flags.GetString("cache-dir")
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
}

func checkFormat(format string) error {
	switch format {
	case "table", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use table, json or yaml", format)
	}
}

func writeResult(res categorize.Result, format string, w io.Writer) error {
	switch format {
	case "json":
		return categorize.FormatJSON(res, w)
	case "yaml":
		return categorize.FormatYAML(res, w)
	default:
		categorize.FormatTable(res, w)
		return nil
	}
}

func init() {
	categorizeCmd.Flags().Int("max-categories", 6, "maximum number of categories to print")
	categorizeCmd.Flags().Int("enhance-limit", 5, "items given to a category that arrives empty")
	categorizeCmd.Flags().Bool("dedup", false, "drop repeated items when merging categories with the same id")
	categorizeCmd.Flags().Bool("include-classified", false, "classify items even when the response proposes categories")
	categorizeCmd.Flags().String("registry", "", "source registry YAML used to fill in source types")
	categorizeCmd.Flags().String("cache-dir", ".insight-engine", "directory holding the result cache")
	categorizeCmd.Flags().Bool("no-cache", false, "neither read nor write the result cache")
	categorizeCmd.Flags().String("format", "table", "output format: table, json or yaml")

	rootCmd.AddCommand(categorizeCmd)
}
