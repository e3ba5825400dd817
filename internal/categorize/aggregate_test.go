// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/insight-engine/internal/classify"
	"github.com/pdiddy/insight-engine/internal/metrics"
	"github.com/pdiddy/insight-engine/pkg/types"
)

// --- helpers ---

func newAggregator(opts Options) *Aggregator {
	return NewAggregator(classify.Default(), opts, nil)
}

func item(content string) types.ContentItem {
	return types.ContentItem{Content: content, Sources: []types.Source{}}
}

func scored(v float64) types.Metrics {
	return types.Metrics{Relevance: v, Accuracy: v, Credibility: v, Overall: v}
}

func candidate(name string, overall float64, items ...types.ContentItem) types.Category {
	return types.Category{Name: name, Content: items, Metrics: scored(overall)}
}

func names(cats []types.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.Name
	}
	return out
}

func f(v float64) *float64 { return &v }

// --- example scenarios ---

func TestAggregateEmptyInputSynthesizesDefaults(t *testing.T) {
	got := newAggregator(Options{}).Aggregate(nil, nil)

	require.Len(t, got, 2)
	assert.Equal(t, []string{types.KeyInsights, types.AllResults}, names(got))
	for _, c := range got {
		assert.NotNil(t, c.Content)
		assert.Empty(t, c.Content)
		assert.Equal(t, metrics.Default(), c.Metrics)
	}
	assert.Equal(t, "key_insights", got[0].ID)
	assert.Equal(t, "all_results", got[1].ID)
}

func TestAggregateSingleBusinessItem(t *testing.T) {
	in := types.ContentItem{Content: "Our Q3 revenue grew due to enterprise demand", Sources: []types.Source{}}

	got := newAggregator(Options{}).Aggregate([]types.ContentItem{in}, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "Business", got[0].Name)
	assert.Equal(t, "business", got[0].ID)
	assert.Equal(t, []types.ContentItem{in}, got[0].Content)
	m := got[0].Metrics
	for _, v := range []float64{m.Relevance, m.Accuracy, m.Credibility, m.Overall} {
		assert.GreaterOrEqual(t, v, 0.7)
		assert.LessOrEqual(t, v, 0.75)
	}
}

func TestAggregateTopKByOverall(t *testing.T) {
	var cands []types.Category
	for i := 0; i < 8; i++ {
		cands = append(cands, candidate(fmt.Sprintf("Topic %d", i), 0.1*float64(i+1)))
	}

	got := newAggregator(Options{MaxCategories: 6}).Aggregate(nil, cands)

	require.Len(t, got, 6)
	assert.Equal(t, []string{"Topic 7", "Topic 6", "Topic 5", "Topic 4", "Topic 3", "Topic 2"}, names(got))
}

func TestAggregateMergesSharedID(t *testing.T) {
	a := candidate("Market Analysis", 0.8, item("a1"), item("a2"))
	b := types.Category{ID: "market_analysis", Name: "market analysis", Content: []types.ContentItem{item("b1"), item("b2"), item("b3")}}

	got := newAggregator(Options{}).Aggregate(nil, []types.Category{a, b})

	require.Len(t, got, 1)
	assert.Equal(t, "market_analysis", got[0].ID)
	assert.Equal(t, "Market Analysis", got[0].Name)
	require.Len(t, got[0].Content, 5)
	assert.Equal(t, "a1", got[0].Content[0].Content)
	assert.Equal(t, "b3", got[0].Content[4].Content)
}

func TestAggregateFillsEmptyCandidate(t *testing.T) {
	items := []types.ContentItem{item("one"), item("two"), item("three")}
	cands := []types.Category{{ID: "x", Name: "X", Content: []types.ContentItem{}}}

	got := newAggregator(Options{}).Aggregate(items, cands)

	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)
	assert.Equal(t, items, got[0].Content)
}

// --- properties ---

func TestAggregateKeyInsightsPinned(t *testing.T) {
	tests := []struct {
		name  string
		cands []types.Category
		max   int
	}{
		{
			name: "lowest score by name",
			cands: []types.Category{
				candidate("Business", 0.9), candidate("Technology", 0.8), candidate(types.KeyInsights, 0.1),
			},
		},
		{
			name: "by id",
			cands: []types.Category{
				candidate("Business", 0.9),
				{ID: "key_insights_summary", Name: "Summary", Metrics: scored(0.2)},
			},
		},
		{
			name: "survives truncation",
			cands: []types.Category{
				candidate("A", 0.9), candidate("B", 0.8), candidate("C", 0.7),
				candidate("D", 0.6), candidate(types.KeyInsights, 0.05),
			},
			max: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newAggregator(Options{MaxCategories: tt.max}).Aggregate(nil, tt.cands)
			require.NotEmpty(t, got)
			assert.True(t, IsKeyInsights(got[0]), "first category = %q", got[0].Name)
			if tt.max > 0 {
				assert.Len(t, got, tt.max)
			}
		})
	}
}

func TestAggregateClassifiedKeyInsightsPinned(t *testing.T) {
	items := []types.ContentItem{
		{Content: "Revenue from enterprise customers grew", Metrics: &types.RawMetrics{Relevance: f(0.95), Accuracy: f(0.95), Credibility: f(0.95)}},
		{Content: "Nothing in particular happened", Metrics: &types.RawMetrics{Relevance: f(0.1), Accuracy: f(0.1), Credibility: f(0.1)}},
	}

	got := newAggregator(Options{}).Aggregate(items, nil)

	require.Len(t, got, 2)
	assert.Equal(t, []string{types.KeyInsights, "Business"}, names(got))
}

func TestAggregatePropertiesHoldForGeneratedInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	words := []string{
		"revenue", "market", "profits", "funding", "software", "ceo",
		"lawsuit", "regulation", "twitter", "weather", "lunch", "",
	}

	for round := 0; round < 200; round++ {
		var items []types.ContentItem
		for i := rng.Intn(12); i > 0; i-- {
			it := types.ContentItem{Content: words[rng.Intn(len(words))] + " " + words[rng.Intn(len(words))]}
			if rng.Intn(3) == 0 {
				it.Metrics = &types.RawMetrics{Relevance: f(rng.Float64() * 150), Credibility: f(rng.Float64())}
			}
			items = append(items, it)
		}
		var cands []types.Category
		if rng.Intn(2) == 0 {
			for i := rng.Intn(10); i > 0; i-- {
				cands = append(cands, types.Category{
					Name:    fmt.Sprintf("C%d", rng.Intn(6)),
					Metrics: types.Metrics{Relevance: rng.Float64() * 2, Accuracy: rng.Float64(), Credibility: -rng.Float64(), Overall: rng.Float64()},
				})
			}
		}
		max := rng.Intn(8)
		opts := Options{MaxCategories: max, DedupContent: rng.Intn(2) == 0, IncludeClassified: rng.Intn(2) == 0}

		got := newAggregator(opts).Aggregate(items, cands)

		wantMax := max
		if wantMax <= 0 {
			wantMax = DefaultMaxCategories
		}
		require.LessOrEqual(t, len(got), wantMax, "round %d", round)
		require.NotEmpty(t, got, "round %d", round)

		ids := make(map[string]bool)
		for i, c := range got {
			assert.NotNil(t, c.Content, "round %d: %s content", round, c.ID)
			assert.False(t, ids[c.ID], "round %d: duplicate id %s", round, c.ID)
			ids[c.ID] = true
			if IsKeyInsights(c) {
				assert.Equal(t, 0, i, "round %d: key insights at %d", round, i)
			}
			for _, v := range []float64{c.Metrics.Relevance, c.Metrics.Accuracy, c.Metrics.Credibility, c.Metrics.Overall} {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
			assert.InDelta(t, metrics.ComputeOverall(c.Metrics), c.Metrics.Overall, metrics.Epsilon+1e-9)
		}
	}
}

func TestAggregateNonEmptyInputNeverEmpty(t *testing.T) {
	got := newAggregator(Options{}).Aggregate([]types.ContentItem{item("the weather")}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, types.KeyInsights, got[0].Name)
	assert.Len(t, got[0].Content, 1)
}

// --- merge behaviour ---

func TestAggregateMergeMetrics(t *testing.T) {
	t.Run("mean of item metrics", func(t *testing.T) {
		a := candidate("Tech", 0.2, types.ContentItem{Content: "x", Metrics: &types.RawMetrics{Relevance: f(100), Accuracy: f(100), Credibility: f(100)}})
		b := candidate("tech", 0.3, types.ContentItem{Content: "y", Metrics: &types.RawMetrics{Relevance: f(0.5), Accuracy: f(0.5), Credibility: f(0.5)}})

		got := newAggregator(Options{}).Aggregate(nil, []types.Category{a, b})

		require.Len(t, got, 1)
		assert.InDelta(t, 0.75, got[0].Metrics.Overall, 1e-9)
	})

	t.Run("mean of category metrics when items carry none", func(t *testing.T) {
		a := candidate("Tech", 0.2, item("x"))
		b := candidate("tech", 0.4, item("y"))

		got := newAggregator(Options{}).Aggregate(nil, []types.Category{a, b})

		require.Len(t, got, 1)
		assert.InDelta(t, 0.3, got[0].Metrics.Overall, 1e-9)
	})

	t.Run("default when nothing is scored", func(t *testing.T) {
		a := types.Category{Name: "Tech", Content: []types.ContentItem{item("x")}}
		b := types.Category{Name: "Tech", Content: []types.ContentItem{item("y")}}

		got := newAggregator(Options{}).Aggregate(nil, []types.Category{a, b})

		require.Len(t, got, 1)
		assert.Equal(t, metrics.Default(), got[0].Metrics)
	})

	t.Run("unmerged candidate keeps its score", func(t *testing.T) {
		a := candidate("Tech", 0.42, types.ContentItem{Content: "x", Metrics: &types.RawMetrics{Relevance: f(0.9)}})

		got := newAggregator(Options{}).Aggregate(nil, []types.Category{a})

		require.Len(t, got, 1)
		assert.Equal(t, scored(0.42), got[0].Metrics)
	})
}

func TestAggregateDedupContent(t *testing.T) {
	a := candidate("News", 0.5, item("Same story"), item("Other"))
	b := candidate("News", 0.5, item("  same   STORY "), item("Third"))

	naive := newAggregator(Options{}).Aggregate(nil, []types.Category{a, b})
	require.Len(t, naive, 1)
	assert.Len(t, naive[0].Content, 4)

	deduped := newAggregator(Options{DedupContent: true}).Aggregate(nil, []types.Category{a, b})
	require.Len(t, deduped, 1)
	require.Len(t, deduped[0].Content, 3)
	assert.Equal(t, "Same story", deduped[0].Content[0].Content)

	// Inputs are untouched.
	assert.Len(t, a.Content, 2)
	assert.Len(t, b.Content, 2)
}

func TestAggregateIncludeClassified(t *testing.T) {
	items := []types.ContentItem{
		item("Enterprise revenue is up"),
		{Content: "Pre-labelled", Category: "Custom"},
	}
	cands := []types.Category{candidate("Business", 0.6, item("Existing"))}

	authoritative := newAggregator(Options{}).Aggregate(items, cands)
	require.Len(t, authoritative, 1)
	assert.Len(t, authoritative[0].Content, 1)

	mixed := newAggregator(Options{IncludeClassified: true}).Aggregate(items, cands)
	require.Len(t, mixed, 2)
	// Custom has the default score and outranks the merged Business bucket.
	assert.Equal(t, []string{"Custom", "Business"}, names(mixed))
	business := mixed[1]
	require.Len(t, business.Content, 2)
	assert.Equal(t, "Existing", business.Content[0].Content)
	assert.InDelta(t, 0.6, business.Metrics.Overall, 1e-9)
}

func TestAggregatePreassignedCategoryHonored(t *testing.T) {
	items := []types.ContentItem{{Content: "revenue enterprise sales", Category: "Social Sentiment"}}

	got := newAggregator(Options{}).Aggregate(items, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "Social Sentiment", got[0].Name)
	assert.Equal(t, "social_sentiment", got[0].ID)
}

// --- malformed input ---

func TestAggregateSkipsMalformedItems(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	agg := NewAggregator(classify.Default(), Options{}, zap.New(core))

	items := []types.ContentItem{
		{Content: "", Title: "empty"},
		item("Revenue beat expectations"),
		{Content: "   "},
	}
	got := agg.Aggregate(items, nil)

	require.Len(t, got, 1)
	assert.Len(t, got[0].Content, 1)
	assert.Equal(t, 2, logs.FilterMessage("skipping item without content").Len())
}

func TestAggregateAllMalformedItemsYieldDefaults(t *testing.T) {
	got := newAggregator(Options{}).Aggregate([]types.ContentItem{{Content: ""}}, nil)
	assert.Equal(t, []string{types.KeyInsights, types.AllResults}, names(got))
}

func TestAggregateCandidateCleanup(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	agg := NewAggregator(classify.Default(), Options{}, zap.New(core))

	cands := []types.Category{
		{Name: "  "},
		{ID: "only_id", Content: []types.ContentItem{item("ok"), {Content: ""}}},
		{Name: "Named Only"},
	}
	got := agg.Aggregate([]types.ContentItem{item("filler")}, cands)

	require.Len(t, got, 2)
	byID := map[string]types.Category{}
	for _, c := range got {
		byID[c.ID] = c
		assert.NotEmpty(t, c.Color)
	}
	assert.Equal(t, "only_id", byID["only_id"].Name)
	assert.Len(t, byID["only_id"].Content, 1)
	assert.Equal(t, []types.ContentItem{item("filler")}, byID["named_only"].Content)
	assert.Equal(t, 1, logs.FilterMessage("skipping candidate category without name or id").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipping candidate item without content").Len())
}

func TestAggregateOptionsDefaults(t *testing.T) {
	agg := newAggregator(Options{MaxCategories: -1})
	assert.Equal(t, DefaultMaxCategories, agg.Options().MaxCategories)
	assert.Equal(t, DefaultEnhanceLimit, agg.Options().EnhanceLimit)
}

func TestAggregateCapOfOneKeepsKeyInsightsOnly(t *testing.T) {
	got := newAggregator(Options{MaxCategories: 1}).Aggregate(nil, nil)
	require.Len(t, got, 1)
	assert.Equal(t, types.KeyInsights, got[0].Name)
}
