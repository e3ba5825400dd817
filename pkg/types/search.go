// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the insight-engine pipeline:
// content items retrieved by the search layer, their provenance, the
// four-axis metrics and the categories produced by categorization.
package types

// Source is provenance metadata for a retrieved content item. Values are
// treated as immutable; enrichment produces copies.
type Source struct {
	// Name is the display name of the origin (e.g. "TechCrunch", "Sequoia Capital").
	Name string `json:"name" yaml:"name"`

	// URL is the address the content was retrieved from.
	URL string `json:"url" yaml:"url"`

	// Type classifies the origin (e.g. "web", "social", "vc_firm", "verified_source").
	Type string `json:"type" yaml:"type"`
}

// ContentItem is a single retrieved text unit with provenance.
type ContentItem struct {
	// Content is the body text. It may contain HTML markup.
	Content string `json:"content" yaml:"content"`

	// Title is optional; empty means no title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Sources lists where the content came from.
	Sources []Source `json:"sources" yaml:"sources"`

	// Category is a pre-assigned label. When set, classification is skipped.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Metrics carries item-level scores from the search layer, if any.
	Metrics *RawMetrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Metrics is the normalized four-axis score. Every field is in [0,1] and
// Overall is kept consistent with the other three.
type Metrics struct {
	Relevance   float64 `json:"relevance" yaml:"relevance"`
	Accuracy    float64 `json:"accuracy" yaml:"accuracy"`
	Credibility float64 `json:"credibility" yaml:"credibility"`
	Overall     float64 `json:"overall" yaml:"overall"`
}

// RawMetrics is the partial form of Metrics received from upstream. Fields
// are optional and may use either the 0-1 or the 0-100 convention.
type RawMetrics struct {
	Relevance   *float64 `json:"relevance,omitempty" yaml:"relevance,omitempty"`
	Accuracy    *float64 `json:"accuracy,omitempty" yaml:"accuracy,omitempty"`
	Credibility *float64 `json:"credibility,omitempty" yaml:"credibility,omitempty"`
	Overall     *float64 `json:"overall,omitempty" yaml:"overall,omitempty"`
}

// IsEmpty reports whether no field is set.
func (r RawMetrics) IsEmpty() bool {
	return r.Relevance == nil && r.Accuracy == nil && r.Credibility == nil && r.Overall == nil
}
