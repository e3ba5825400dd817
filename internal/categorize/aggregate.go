// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package categorize groups classified content items into named categories,
// merges duplicates, scores, orders and caps them, and back-fills empty
// categories from the raw result set.
package categorize

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/insight-engine/internal/classify"
	"github.com/pdiddy/insight-engine/internal/metrics"
	"github.com/pdiddy/insight-engine/pkg/types"
)

const (
	// DefaultMaxCategories is the display budget applied when none is configured.
	DefaultMaxCategories = 6

	// DefaultEnhanceLimit is the number of head items given to an empty category.
	DefaultEnhanceLimit = 5
)

// Options controls aggregation.
type Options struct {
	// MaxCategories caps the output length. Zero or less uses DefaultMaxCategories.
	MaxCategories int

	// EnhanceLimit is passed to Enhance. Zero or less uses DefaultEnhanceLimit.
	EnhanceLimit int

	// DedupContent drops repeated items (same title and text) from merged content.
	DedupContent bool

	// IncludeClassified appends classified buckets after the candidates.
	IncludeClassified bool
}

// OptionsFromConfig maps the configuration section onto Options.
func OptionsFromConfig(cfg types.CategorizeConfig) Options {
	return Options{
		MaxCategories:     cfg.MaxCategories,
		EnhanceLimit:      cfg.EnhanceLimit,
		DedupContent:      cfg.DedupContent,
		IncludeClassified: cfg.IncludeClassified,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxCategories <= 0 {
		o.MaxCategories = DefaultMaxCategories
	}
	if o.EnhanceLimit <= 0 {
		o.EnhanceLimit = DefaultEnhanceLimit
	}
	return o
}

// Aggregator builds the ordered category list. It holds no per-call state
// and may be shared between goroutines.
type Aggregator struct {
	classifier *classify.Classifier
	opts       Options
	log        *zap.Logger
}

// NewAggregator returns an Aggregator using c to label items. A nil logger
// discards output.
func NewAggregator(c *classify.Classifier, opts Options, log *zap.Logger) *Aggregator {
	if c == nil {
		c = classify.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{classifier: c, opts: opts.withDefaults(), log: log}
}

// Options returns the effective options.
func (a *Aggregator) Options() Options {
	return a.opts
}

// Aggregate groups items into categories. Non-empty candidates are
// authoritative; otherwise every item is labeled and grouped in first-seen
// order. Categories sharing an id are merged, empty ones are back-filled
// from items, the list is sorted by overall score with Key Insights pinned
// first and capped at MaxCategories. When no category remains the two
// defaults are used in its place. Items with blank content are skipped with
// a warning.
func (a *Aggregator) Aggregate(items []types.ContentItem, candidates []types.Category) []types.Category {
	valid := a.validItems(items)

	var cats []types.Category
	if len(candidates) > 0 {
		cats = a.prepareCandidates(candidates)
		if a.opts.IncludeClassified {
			cats = append(cats, a.group(valid)...)
		}
	} else {
		cats = a.group(valid)
	}

	cats = a.merge(cats)
	if len(cats) == 0 {
		a.log.Debug("no categories produced, using defaults")
		cats = Defaults()
	}
	cats = Enhance(cats, valid, a.opts.EnhanceLimit)
	order(cats)
	return truncate(cats, a.opts.MaxCategories)
}

// Defaults returns the categories synthesized for an empty result.
func Defaults() []types.Category {
	return []types.Category{NewCategory(types.KeyInsights), NewCategory(types.AllResults)}
}

func (a *Aggregator) validItems(items []types.ContentItem) []types.ContentItem {
	valid := make([]types.ContentItem, 0, len(items))
	for i, item := range items {
		if !isValid(item) {
			a.log.Warn("skipping item without content",
				zap.Int("index", i), zap.String("title", item.Title))
			continue
		}
		valid = append(valid, item)
	}
	return valid
}

func isValid(item types.ContentItem) bool {
	return strings.TrimSpace(item.Content) != ""
}

// prepareCandidates copies candidates, deriving missing ids, names and
// colors and dropping malformed content items.
func (a *Aggregator) prepareCandidates(candidates []types.Category) []types.Category {
	out := make([]types.Category, 0, len(candidates))
	for i, c := range candidates {
		c.Name = strings.TrimSpace(c.Name)
		c.ID = strings.TrimSpace(c.ID)
		if c.Name == "" && c.ID == "" {
			a.log.Warn("skipping candidate category without name or id", zap.Int("index", i))
			continue
		}
		if c.ID == "" {
			c.ID = ID(c.Name)
		}
		if c.Name == "" {
			c.Name = c.ID
		}
		if c.Color == "" {
			c.Color = Color(c.ID)
		}

		content := make([]types.ContentItem, 0, len(c.Content))
		for j, item := range c.Content {
			if !isValid(item) {
				a.log.Warn("skipping candidate item without content",
					zap.String("category", c.ID), zap.Int("index", j))
				continue
			}
			content = append(content, item)
		}
		c.Content = content
		out = append(out, c)
	}
	return out
}

// group labels every item and buckets them by label in first-seen order.
// Buckets carry zero metrics so merge scores them from their items.
func (a *Aggregator) group(items []types.ContentItem) []types.Category {
	index := make(map[string]int)
	var cats []types.Category
	for _, item := range items {
		label := a.classifier.Label(item)
		id := ID(label)
		idx, ok := index[id]
		if !ok {
			idx = len(cats)
			index[id] = idx
			cats = append(cats, types.Category{
				ID:      id,
				Name:    label,
				Content: []types.ContentItem{},
				Color:   Color(id),
			})
		}
		cats[idx].Content = append(cats[idx].Content, item)
	}
	return cats
}

type bucket struct {
	cat   types.Category
	parts []types.Metrics
	count int
}

// merge folds categories sharing an id into the first occurrence and
// settles every category's metrics.
func (a *Aggregator) merge(cats []types.Category) []types.Category {
	index := make(map[string]int)
	var buckets []*bucket
	for _, c := range cats {
		idx, ok := index[c.ID]
		if !ok {
			index[c.ID] = len(buckets)
			b := &bucket{cat: c, count: 1}
			b.cat.Content = append([]types.ContentItem{}, c.Content...)
			if hasMetrics(c.Metrics) {
				b.parts = append(b.parts, metrics.Sanitize(c.Metrics))
			}
			buckets = append(buckets, b)
			continue
		}

		b := buckets[idx]
		a.log.Debug("merging duplicate category", zap.String("id", c.ID),
			zap.Int("existing", len(b.cat.Content)), zap.Int("incoming", len(c.Content)))
		b.cat.Content = append(b.cat.Content, c.Content...)
		if hasMetrics(c.Metrics) {
			b.parts = append(b.parts, metrics.Sanitize(c.Metrics))
		}
		b.count++
	}

	out := make([]types.Category, len(buckets))
	for i, b := range buckets {
		if a.opts.DedupContent {
			b.cat.Content = dedup(b.cat.Content)
		}
		b.cat.Metrics = settleMetrics(b)
		out[i] = b.cat
	}
	return out
}

// settleMetrics keeps an unmerged category's own score. Otherwise the score
// is the mean of the constituent item metrics, then the mean of the merged
// categories' scores, then the default.
func settleMetrics(b *bucket) types.Metrics {
	if b.count == 1 && len(b.parts) == 1 {
		return b.parts[0]
	}
	if items := itemMetrics(b.cat.Content); len(items) > 0 {
		return metrics.Mean(items)
	}
	if len(b.parts) > 0 {
		return metrics.Mean(b.parts)
	}
	return metrics.Default()
}

func itemMetrics(items []types.ContentItem) []types.Metrics {
	var out []types.Metrics
	for _, item := range items {
		if item.Metrics == nil || item.Metrics.IsEmpty() {
			continue
		}
		out = append(out, metrics.Normalize(*item.Metrics))
	}
	return out
}

// hasMetrics treats an all-zero value as unset.
func hasMetrics(m types.Metrics) bool {
	return m != (types.Metrics{})
}

func dedup(items []types.ContentItem) []types.ContentItem {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		key := dedupKey(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func dedupKey(item types.ContentItem) string {
	norm := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	return norm(item.Title) + "\x00" + norm(item.Content)
}

// order sorts by overall score, highest first, keeping input order on ties,
// and moves the first Key Insights category to the front.
func order(cats []types.Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].Metrics.Overall > cats[j].Metrics.Overall
	})
	for i, c := range cats {
		if !IsKeyInsights(c) {
			continue
		}
		if i > 0 {
			copy(cats[1:i+1], cats[:i])
			cats[0] = c
		}
		return
	}
}

func truncate(cats []types.Category, max int) []types.Category {
	if max <= 0 {
		max = DefaultMaxCategories
	}
	if len(cats) > max {
		return cats[:max]
	}
	return cats
}
