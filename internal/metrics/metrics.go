// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics normalizes and combines the four-axis score (relevance,
// accuracy, credibility, overall) attached to content items and categories.
package metrics

import (
	"math"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// Defaults applied to missing fields: an unknown but plausible prior.
const (
	DefaultRelevance   = 0.7
	DefaultAccuracy    = 0.75
	DefaultCredibility = 0.7
)

// Epsilon is the largest difference tolerated between an upstream overall
// score and the recomputed mean before the upstream value is discarded.
const Epsilon = 0.01

// precision is the number of decimal places kept by ComputeOverall.
const precision = 1e4

// DisplayPercent is Metrics scaled to integer percentages for presentation.
type DisplayPercent struct {
	Relevance   int `json:"relevance" yaml:"relevance"`
	Accuracy    int `json:"accuracy" yaml:"accuracy"`
	Credibility int `json:"credibility" yaml:"credibility"`
	Overall     int `json:"overall" yaml:"overall"`
}

// Default returns the metrics used when nothing is known.
func Default() types.Metrics {
	m := types.Metrics{
		Relevance:   DefaultRelevance,
		Accuracy:    DefaultAccuracy,
		Credibility: DefaultCredibility,
	}
	m.Overall = ComputeOverall(m)
	return m
}

// Normalize converts partial upstream metrics to the 0-1 convention. When
// any present field exceeds 1 in magnitude the input is taken as
// percentages and every present field is divided by 100. Missing fields get
// the defaults and every field is clamped to [0,1].
func Normalize(raw types.RawMetrics) types.Metrics {
	scale := 1.0
	if isPercent(raw) {
		scale = 100
	}

	m := types.Metrics{
		Relevance:   field(raw.Relevance, DefaultRelevance, scale),
		Accuracy:    field(raw.Accuracy, DefaultAccuracy, scale),
		Credibility: field(raw.Credibility, DefaultCredibility, scale),
	}

	computed := ComputeOverall(m)
	m.Overall = computed
	if raw.Overall != nil {
		upstream := clamp(*raw.Overall / scale)
		if math.Abs(upstream-computed) <= Epsilon {
			m.Overall = upstream
		}
	}
	return m
}

// ComputeOverall returns the mean of relevance, accuracy and credibility,
// rounded to four decimal places.
func ComputeOverall(m types.Metrics) float64 {
	mean := (m.Relevance + m.Accuracy + m.Credibility) / 3
	return math.Round(mean*precision) / precision
}

// Sanitize clamps every field to [0,1] and recomputes Overall when it is
// further than Epsilon from the mean of the other three.
func Sanitize(m types.Metrics) types.Metrics {
	out := types.Metrics{
		Relevance:   clamp(m.Relevance),
		Accuracy:    clamp(m.Accuracy),
		Credibility: clamp(m.Credibility),
		Overall:     clamp(m.Overall),
	}
	if computed := ComputeOverall(out); math.Abs(out.Overall-computed) > Epsilon {
		out.Overall = computed
	}
	return out
}

// Mean averages each axis across ms and recomputes Overall. An empty input
// yields Default.
func Mean(ms []types.Metrics) types.Metrics {
	if len(ms) == 0 {
		return Default()
	}
	var sum types.Metrics
	for _, m := range ms {
		sum.Relevance += m.Relevance
		sum.Accuracy += m.Accuracy
		sum.Credibility += m.Credibility
	}
	n := float64(len(ms))
	out := types.Metrics{
		Relevance:   clamp(sum.Relevance / n),
		Accuracy:    clamp(sum.Accuracy / n),
		Credibility: clamp(sum.Credibility / n),
	}
	out.Overall = ComputeOverall(out)
	return out
}

// ToDisplayPercent scales each field by 100 and rounds to the nearest integer.
func ToDisplayPercent(m types.Metrics) DisplayPercent {
	return DisplayPercent{
		Relevance:   percent(m.Relevance),
		Accuracy:    percent(m.Accuracy),
		Credibility: percent(m.Credibility),
		Overall:     percent(m.Overall),
	}
}

func isPercent(raw types.RawMetrics) bool {
	for _, v := range []*float64{raw.Relevance, raw.Accuracy, raw.Credibility, raw.Overall} {
		if v != nil && math.Abs(*v) > 1 {
			return true
		}
	}
	return false
}

func field(v *float64, fallback, scale float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return fallback
	}
	return clamp(*v / scale)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}
