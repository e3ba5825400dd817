// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/insight-engine/internal/classify"
	"github.com/pdiddy/insight-engine/internal/metrics"
	"github.com/pdiddy/insight-engine/pkg/types"
)

// Pipeline runs classification, aggregation and enhancement for one
// completed search. It is stateless between calls.
type Pipeline struct {
	classifier *classify.Classifier
	agg        *Aggregator
	log        *zap.Logger
}

// Result is the output of one pipeline run.
type Result struct {
	RunID      string           `json:"run_id" yaml:"run_id"`
	Query      string           `json:"query" yaml:"query"`
	Categories []types.Category `json:"categories" yaml:"categories"`
	Summary    Summary          `json:"summary" yaml:"summary"`

	// Cached marks a result replayed from a previous run.
	Cached bool `json:"cached,omitempty" yaml:"cached,omitempty"`
}

// Summary aggregates counts and scores across an output category list.
type Summary struct {
	Categories int                    `json:"categories" yaml:"categories"`
	Items      int                    `json:"items" yaml:"items"`
	Sources    int                    `json:"sources" yaml:"sources"`
	Metrics    types.Metrics          `json:"metrics" yaml:"metrics"`
	Display    metrics.DisplayPercent `json:"display" yaml:"display"`
}

// New builds a Pipeline from configuration. Custom rules replace the
// built-in keyword table.
func New(cfg types.CategorizeConfig, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}

	c := classify.Default()
	if len(cfg.Rules) > 0 {
		var err error
		c, err = classify.New(cfg.Rules)
		if err != nil {
			return nil, fmt.Errorf("building classifier: %w", err)
		}
	}

	return &Pipeline{
		classifier: c,
		agg:        NewAggregator(c, OptionsFromConfig(cfg), log),
		log:        log,
	}, nil
}

// Classifier returns the classifier used by the pipeline.
func (p *Pipeline) Classifier() *classify.Classifier {
	return p.classifier
}

// Run categorizes items for query. The query is only used for logging
// and is echoed in the result.
func (p *Pipeline) Run(query string, items []types.ContentItem, candidates []types.Category) Result {
	runID := uuid.NewString()
	log := p.log.With(zap.String("run_id", runID), zap.String("query", query))

	log.Debug("categorizing",
		zap.Int("items", len(items)), zap.Int("candidates", len(candidates)))

	cats := p.agg.Aggregate(items, candidates)
	summary := Summarize(cats)

	log.Info("categorized results",
		zap.Int("categories", summary.Categories),
		zap.Int("items", summary.Items),
		zap.Int("sources", summary.Sources),
		zap.Float64("overall", summary.Metrics.Overall))

	return Result{
		RunID:      runID,
		Query:      query,
		Categories: cats,
		Summary:    summary,
	}
}

// Summarize counts categories, placed items and distinct sources, and
// averages the category metrics.
func Summarize(cats []types.Category) Summary {
	s := Summary{Categories: len(cats)}

	sources := make(map[string]bool)
	ms := make([]types.Metrics, 0, len(cats))
	for _, c := range cats {
		s.Items += len(c.Content)
		ms = append(ms, c.Metrics)
		for _, item := range c.Content {
			for _, src := range item.Sources {
				key := src.URL
				if key == "" {
					key = src.Name
				}
				if key != "" {
					sources[key] = true
				}
			}
		}
	}
	s.Sources = len(sources)
	s.Metrics = metrics.Mean(ms)
	s.Display = metrics.ToDisplayPercent(s.Metrics)
	return s
}
