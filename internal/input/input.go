// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package input decodes search responses at the system boundary and
// normalizes them into the content items and candidate categories the
// categorization pipeline consumes.
package input

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/insight-engine/internal/metrics"
	"github.com/pdiddy/insight-engine/pkg/types"
)

// Format selects the encoding of a response file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// llmSource is the provenance recorded on items derived from the LLM result.
var llmSource = types.Source{Name: "LLM summary", Type: "llm"}

// Response is a completed search: the raw results, the LLM summary and any
// categories the LLM proposed.
type Response struct {
	Query      string              `json:"query" yaml:"query"`
	Results    []types.ContentItem `json:"results" yaml:"results"`
	LLM        LLMResult           `json:"llm" yaml:"llm"`
	Categories []CandidateCategory `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// CandidateCategory is a category proposed upstream, with raw metrics.
type CandidateCategory struct {
	ID      string              `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string              `json:"name" yaml:"name"`
	Content []types.ContentItem `json:"content" yaml:"content"`
	Metrics *types.RawMetrics   `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Color   string              `json:"color,omitempty" yaml:"color,omitempty"`
}

// Batch is a normalized response ready for the pipeline.
type Batch struct {
	Query      string
	Items      []types.ContentItem
	Candidates []types.Category
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported response file %q: use .json, .yaml or .yml", path)
	}
}

// ReadFile decodes the response file at path.
func ReadFile(path string) (*Response, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening response file: %w", err)
	}
	defer f.Close()

	resp, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return resp, nil
}

// Decode reads one response from r.
func Decode(r io.Reader, format Format) (*Response, error) {
	var resp Response
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&resp); err != nil {
			return nil, fmt.Errorf("parsing JSON response: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&resp); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parsing YAML response: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
	return &resp, nil
}

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Normalize flattens a response into pipeline input. Search results come
// first, followed by items derived from the LLM result:
//   - text: one item per paragraph
//   - list: one item per entry
//   - structured: the summary as a Key Insights item, then one item per section
//
// Candidate metrics are normalized; candidates without metrics keep a zero
// score so aggregation derives one.
func Normalize(resp *Response) Batch {
	b := Batch{Query: strings.TrimSpace(resp.Query)}

	b.Items = make([]types.ContentItem, 0, len(resp.Results))
	for _, item := range resp.Results {
		b.Items = append(b.Items, withSources(item))
	}
	b.Items = append(b.Items, llmItems(resp.LLM)...)

	for _, c := range resp.Categories {
		cat := types.Category{
			ID:      c.ID,
			Name:    c.Name,
			Color:   c.Color,
			Content: make([]types.ContentItem, 0, len(c.Content)),
		}
		for _, item := range c.Content {
			cat.Content = append(cat.Content, withSources(item))
		}
		if c.Metrics != nil && !c.Metrics.IsEmpty() {
			cat.Metrics = metrics.Normalize(*c.Metrics)
		}
		b.Candidates = append(b.Candidates, cat)
	}
	return b
}

func llmItems(r LLMResult) []types.ContentItem {
	var items []types.ContentItem
	add := func(title, content, category string) {
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		items = append(items, types.ContentItem{
			Content:  content,
			Title:    strings.TrimSpace(title),
			Sources:  []types.Source{llmSource},
			Category: strings.TrimSpace(category),
		})
	}

	switch r.Kind {
	case KindText:
		for _, p := range paragraphBreak.Split(r.Value, -1) {
			add("", p, "")
		}
	case KindList:
		for _, entry := range r.Items {
			add("", entry, "")
		}
	case KindStructured:
		add("Summary", r.Summary, types.KeyInsights)
		for _, s := range r.Sections {
			add(s.Title, s.Content, s.Category)
		}
	}
	return items
}

func withSources(item types.ContentItem) types.ContentItem {
	if item.Sources == nil {
		item.Sources = []types.Source{}
	}
	return item
}
