// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/insight-engine/pkg/types"
)

func TestClassify(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		item types.ContentItem
		want string
	}{
		{
			name: "revenue and enterprise select business",
			item: types.ContentItem{Content: "Our Q3 revenue grew due to enterprise demand"},
			want: "Business",
		},
		{
			name: "funding round",
			item: types.ContentItem{Content: "The startup raised a Series A led by a venture capital firm"},
			want: "Funding and Investment",
		},
		{
			name: "title contributes triggers",
			item: types.ContentItem{Content: "Details inside.", Title: "New antitrust regulation proposed by lawmakers"},
			want: "Regulation and Policy",
		},
		{
			name: "matching is case insensitive",
			item: types.ContentItem{Content: "EBITDA and NET INCOME beat guidance"},
			want: "Financial Performance",
		},
		{
			name: "no match falls back to key insights",
			item: types.ContentItem{Content: "The weather was pleasant on Tuesday"},
			want: types.KeyInsights,
		},
		{
			name: "empty content falls back",
			item: types.ContentItem{Content: "", Title: "revenue revenue"},
			want: types.KeyInsights,
		},
		{
			name: "whitespace content falls back",
			item: types.ContentItem{Content: "   \n\t"},
			want: types.KeyInsights,
		},
		{
			name: "substring does not match on word boundary",
			item: types.ContentItem{Content: "Supermarkets and marketplaces"},
			want: types.KeyInsights,
		},
		{
			name: "multi-word keyword spans line breaks",
			item: types.ContentItem{Content: "they adopted machine\nlearning"},
			want: "Technology",
		},
		{
			name: "markup is stripped before matching",
			item: types.ContentItem{Content: "<p>Record <b>profits</b></p><p>margins</p><script>var ceo, cto, cfo;</script>"},
			want: "Financial Performance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.item))
		})
	}
}

func TestClassifyTieBreakUsesRuleOrder(t *testing.T) {
	c, err := New([]types.CategoryRule{
		{Name: "First", Keywords: []string{"alpha"}},
		{Name: "Second", Keywords: []string{"beta"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "First", c.Classify(types.ContentItem{Content: "beta then alpha"}))

	reversed, err := New([]types.CategoryRule{
		{Name: "Second", Keywords: []string{"beta"}},
		{Name: "First", Keywords: []string{"alpha"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Second", reversed.Classify(types.ContentItem{Content: "beta then alpha"}))
}

func TestClassifyCountsDistinctTriggers(t *testing.T) {
	c, err := New([]types.CategoryRule{
		{Name: "Repeated", Keywords: []string{"alpha"}},
		{Name: "Varied", Keywords: []string{"beta", "gamma"}},
	})
	require.NoError(t, err)

	got := c.Classify(types.ContentItem{Content: "alpha alpha alpha beta gamma"})
	assert.Equal(t, "Varied", got)
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := Default()
	item := types.ContentItem{Content: "Founders hired a new CEO amid market competition"}
	first := c.Classify(item)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, c.Classify(item))
	}
}

func TestLabelHonorsPreassignedCategory(t *testing.T) {
	c := Default()
	item := types.ContentItem{Content: "revenue enterprise customers", Category: "Custom Bucket"}
	assert.Equal(t, "Custom Bucket", c.Label(item))

	item.Category = "  "
	assert.Equal(t, "Business", c.Label(item))
}

func TestScores(t *testing.T) {
	c := Default()
	scores := c.Scores(types.ContentItem{Content: "Our Q3 revenue grew due to enterprise demand"})
	require.Len(t, scores, len(DefaultRules()))
	assert.Equal(t, "Business", scores[0].Category)
	assert.ElementsMatch(t, []string{"revenue", "enterprise"}, scores[0].Matches)
	assert.Equal(t, []string{"demand"}, scores[1].Matches)

	assert.Nil(t, c.Scores(types.ContentItem{}))
}

func TestClassifyUnicodeKeywords(t *testing.T) {
	c, err := New([]types.CategoryRule{
		{Name: "Hospitality", Keywords: []string{"café", "crème brûlée"}},
		{Name: "Deals", Keywords: []string{"übernahme", "fusión"}},
	})
	require.NoError(t, err)

	tests := []struct {
		content string
		want    string
	}{
		{"the café deal", "Hospitality"},
		{"THE CAFÉ DEAL", "Hospitality"},
		{"dessert: crème brûlée, again", "Hospitality"},
		{"Die Übernahme ist abgeschlossen.", "Deals"},
		{"fusión", "Deals"},
		{"cafés everywhere", Fallback},
		{"übernahmen", Fallback},
		{"xcafé", Fallback},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(types.ContentItem{Content: tt.content}))
		})
	}
}

func TestNewRejectsInvalidRules(t *testing.T) {
	tests := []struct {
		name   string
		rules  []types.CategoryRule
		errMsg string
	}{
		{"empty table", nil, "no classification rules"},
		{"missing name", []types.CategoryRule{{Keywords: []string{"x"}}}, "no name"},
		{"no keywords", []types.CategoryRule{{Name: "A", Keywords: []string{" "}}}, "no keywords"},
		{"duplicate", []types.CategoryRule{
			{Name: "A", Keywords: []string{"x"}},
			{Name: "a", Keywords: []string{"y"}},
		}, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rules)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCategories(t *testing.T) {
	c := Default()
	names := c.Categories()
	require.NotEmpty(t, names)
	assert.Equal(t, "Business", names[0])
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "plain words", PlainText("plain words"))
	assert.Contains(t, PlainText("<div>one</div><div>two</div>"), "one")
	assert.NotContains(t, PlainText("<div>one</div><div>two</div>"), "onetwo")
	assert.Contains(t, PlainText("R&amp;D"), "R&D")
	assert.NotContains(t, PlainText("<style>.x{}</style>text"), ".x")
}
