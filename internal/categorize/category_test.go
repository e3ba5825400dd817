// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/insight-engine/internal/metrics"
	"github.com/pdiddy/insight-engine/pkg/types"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Key Insights", "key_insights"},
		{"Market Analysis", "market_analysis"},
		{"  Funding   and\tInvestment ", "funding_and_investment"},
		{"Business", "business"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ID(tt.name), "ID(%q)", tt.name)
	}
}

func TestColorIsStable(t *testing.T) {
	for _, id := range []string{"business", "technology", "market_analysis", "x"} {
		c := Color(id)
		assert.Equal(t, c, Color(id))
		assert.Contains(t, palette, c)
	}
	assert.Equal(t, keyInsightsColor, Color("key_insights"))
}

func TestNewCategory(t *testing.T) {
	c := NewCategory("All Results")
	assert.Equal(t, "all_results", c.ID)
	assert.Equal(t, "All Results", c.Name)
	assert.NotNil(t, c.Content)
	assert.Equal(t, metrics.Default(), c.Metrics)
	assert.Equal(t, Color("all_results"), c.Color)
}

func TestIsKeyInsights(t *testing.T) {
	assert.True(t, IsKeyInsights(types.Category{Name: "Key Insights"}))
	assert.True(t, IsKeyInsights(types.Category{Name: "key insights "}))
	assert.True(t, IsKeyInsights(types.Category{ID: "top_key_insight", Name: "Highlights"}))
	assert.False(t, IsKeyInsights(types.Category{ID: "insights", Name: "Insights"}))
}
