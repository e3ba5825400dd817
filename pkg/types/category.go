// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// KeyInsights is the name of the category that is always listed first and
// that unmatched content falls back to.
const KeyInsights = "Key Insights"

// AllResults is the name of the second default category synthesized when
// categorization produces nothing.
const AllResults = "All Results"

// Category groups related content items under a display label with an
// aggregate score.
type Category struct {
	// ID is derived from Name (lowercase, whitespace to underscores) unless
	// set explicitly. Unique within an output list.
	ID string `json:"id" yaml:"id"`

	// Name is the display label (e.g. "Key Insights").
	Name string `json:"name" yaml:"name"`

	// Content holds the items assigned to this category, highest relevance
	// first. Never nil in pipeline output.
	Content []ContentItem `json:"content" yaml:"content"`

	// Metrics is the aggregate score of the category.
	Metrics Metrics `json:"metrics" yaml:"metrics"`

	// Color is a rendering hint derived from ID.
	Color string `json:"color" yaml:"color"`
}

// CategoryRule maps a category name to the keyword triggers that select it.
type CategoryRule struct {
	Name     string   `json:"name" yaml:"name" mapstructure:"name"`
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
}
